package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli carries state shared by the subcommands.
type cli struct {
	v      *viper.Viper
	logger *slog.Logger
}

func newRootCommand() *cobra.Command {
	c := &cli{v: newViper()}

	cmd := &cobra.Command{
		Use:           "binspire",
		Short:         "Binspire MCP server: CRUD tools over organizations, users, audits, histories and issues",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadEnvFile(c.v.GetString(keyEnvFile)); err != nil {
				return err
			}
			if err := loadConfigFile(c.v); err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), c.v.GetString(keyLogFormat), c.v.GetString(keyLogLevel))
			if err != nil {
				return err
			}
			c.logger = logger
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default ./binspire.yaml when present)")
	flags.String("env-file", ".env", "dotenv file loaded before reading the environment")
	flags.String("log-format", "text", "log format: text or json")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("database-url", "", "database URL (postgres://, mongodb://, sqlite://); empty uses the in-memory store")

	mustBindFlag(c.v, keyConfig, flags.Lookup("config"))
	mustBindFlag(c.v, keyEnvFile, flags.Lookup("env-file"))
	mustBindFlag(c.v, keyLogFormat, flags.Lookup("log-format"))
	mustBindFlag(c.v, keyLogLevel, flags.Lookup("log-level"))
	mustBindFlag(c.v, keyDatabaseURL, flags.Lookup("database-url"))

	cmd.AddCommand(newServeCommand(c))
	cmd.AddCommand(newMigrateCommand(c))
	cmd.AddCommand(newVersionCommand())
	return cmd
}
