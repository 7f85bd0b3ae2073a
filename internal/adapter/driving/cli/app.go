package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/diillson/finance-tracker-go/pkg/version"

	"github.com/diillson/finance-tracker-go/internal/application/usecase"
	"github.com/diillson/finance-tracker-go/internal/domain/repository"
	"github.com/diillson/finance-tracker-go/internal/shared/types"
	"github.com/spf13/cobra"
)

// Services são os casos de uso usados pelos comandos. São criados depois
// que a configuração é conhecida.
type Services struct {
	Login     *usecase.LoginUseCase
	Dashboard *usecase.DashboardUseCase
}

// Builder monta os serviços a partir da configuração final.
type Builder func(cfg *types.Config) (*Services, error)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
	build      Builder
	version    string

	args     *types.CLIArgs
	config   *types.Config
	services *Services
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string, configRepo repository.ConfigRepository, console types.ConsoleInterface, build Builder) *CLIApp {
	app := &CLIApp{
		version:    versionStr,
		configRepo: configRepo,
		console:    console,
		build:      build,
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:               "finance-tracker",
		Short:             "Personal finance tracker CLI",
		Version:           formattedVersion,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.setup,
		RunE:              app.runInteractive,
	}

	rootCmd.SetVersionTemplate(`{{printf "Finance Tracker version: %s\n" .Version}}`)

	// Adiciona flags de linha de comando
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().String("api-url", "", "Base URL of the finance API (default: http://localhost:8080/api/)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every API request and response")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")

	rootCmd.AddCommand(
		app.loginCmd(),
		app.logoutCmd(),
		app.whoamiCmd(),
		app.categoriesCmd(),
		app.expensesCmd(),
		app.budgetCmd(),
		app.chartCmd(),
		app.dailyCmd(),
		app.dashboardCmd(),
	)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// SetArgs substitui os argumentos da linha de comando (usado em testes).
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config-file")
	apiURL, _ := flags.GetString("api-url")
	debug, _ := flags.GetBool("debug")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")

	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	return &types.CLIArgs{
		ConfigFile: configFile,
		APIBaseURL: apiURL,
		Debug:      debug,
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
	}, nil
}

// loadConfig aplica, em ordem, padrões, arquivo, ambiente e flags.
func (app *CLIApp) loadConfig(cmd *cobra.Command, args *types.CLIArgs) (*types.Config, error) {
	cfg := types.DefaultConfig()
	if args.ConfigFile != "" {
		loaded, err := app.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := app.configRepo.ApplyEnvironment(cfg); err != nil {
		return nil, err
	}

	if args.APIBaseURL != "" {
		cfg.APIBaseURL = args.APIBaseURL
	}
	if args.Debug {
		cfg.Debug = true
	}
	if !cmd.Flags().Changed("report-type") && len(cfg.ReportType) > 0 {
		args.ReportType = cfg.ReportType
	}
	if args.Dir == "" {
		args.Dir = cfg.ReportDir
	}
	if args.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		args.Dir = cwd
	}
	return cfg, nil
}

func (app *CLIApp) setup(cmd *cobra.Command, _ []string) error {
	args, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}
	cfg, err := app.loadConfig(cmd, args)
	if err != nil {
		return err
	}

	services, err := app.build(cfg)
	if err != nil {
		return fmt.Errorf("error initializing services: %w", err)
	}

	app.args = args
	app.config = cfg
	app.services = services
	app.console.LogDebug("Using API at %s", cfg.APIBaseURL)
	return nil
}

// runInteractive é o ponto de entrada do comando raiz: banner e dashboard interativo.
func (app *CLIApp) runInteractive(cmd *cobra.Command, _ []string) error {
	// Exibe o banner de boas-vindas
	displayWelcomeBanner(app.version)

	// Verifica a versão mais recente disponível
	go checkLatestVersion(app.version)

	return app.interactive(cmd.Context())
}
