package main

import (
	"fmt"
	"os"
	"time"

	"github.com/diillson/finance-tracker-go/internal/adapter/driven/api"
	"github.com/diillson/finance-tracker-go/internal/adapter/driven/config"
	"github.com/diillson/finance-tracker-go/internal/adapter/driven/export"
	"github.com/diillson/finance-tracker-go/internal/adapter/driven/session"
	"github.com/diillson/finance-tracker-go/internal/adapter/driving/cli"
	"github.com/diillson/finance-tracker-go/internal/application/query"
	"github.com/diillson/finance-tracker-go/internal/application/usecase"
	"github.com/diillson/finance-tracker-go/internal/shared/types"
	"github.com/diillson/finance-tracker-go/pkg/console"
	"github.com/diillson/finance-tracker-go/pkg/version"
)

func main() {
	// Inicializa os repositórios que não dependem da configuração
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Os clientes da API só são criados depois que flags, arquivo e ambiente foram lidos
	build := func(cfg *types.Config) (*cli.Services, error) {
		if cfg.Debug {
			console.EnableDebug()
		}

		client, err := api.NewClient(cfg.APIBaseURL,
			api.WithTimeout(time.Duration(cfg.HTTPTimeout)*time.Second),
			api.WithLogger(consoleImpl),
			api.WithUserAgent("finance-tracker/"+version.Version),
		)
		if err != nil {
			return nil, err
		}

		opts := query.DefaultOptions()
		opts.Retries = uint64(cfg.QueryRetries)
		opts.StaleTime = time.Duration(cfg.QueryStaleTime) * time.Second
		opts.RetryIf = api.IsRetryable

		sessions, err := session.NewFileRepository(cfg.SessionFile)
		if err != nil {
			return nil, err
		}

		data := usecase.NewDataUseCase(
			query.New(opts),
			api.NewUserClient(client),
			api.NewExpenseClient(client),
			api.NewBudgetClient(client),
			api.NewCategoryClient(client),
			api.NewEmailClient(client),
		)
		login := usecase.NewLoginUseCase(data, sessions)

		return &cli.Services{
			Login:     login,
			Dashboard: usecase.NewDashboardUseCase(data, login, exportRepo, consoleImpl, time.Now),
		}, nil
	}

	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version, configRepo, consoleImpl, build)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
