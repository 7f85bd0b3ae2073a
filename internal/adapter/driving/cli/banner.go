package cli

import (
	"fmt"

	"github.com/diillson/finance-tracker-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
         _____ _                                 _____               _
        |  ___(_)_ __   __ _ _ __   ___ ___     |_   _| __ __ _  ___| | _____ _ __
        | |_  | | '_ \ / _' | '_ \ / __/ _ \      | || '__/ _' |/ __| |/ / _ \ '__|
        |  _| | | | | | (_| | | | | (_|  __/      | || | | (_| | (__|   <  __/ |
        |_|   |_|_| |_|\__,_|_| |_|\___\___|      |_||_|  \__,_|\___|_|\_\___|_|
        `
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(green(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("Finance Tracker CLI (v%s)", formattedVersion)))
}

// checkLatestVersion verifica se uma versão mais recente está disponível.
func checkLatestVersion(currentVersion string) {
	version.CheckLatestVersion(currentVersion)
}
