package cmd

import (
	"github.com/spf13/cobra"
	"gorm.io/gorm/logger"

	"github.com/recetario/recetario/migration"
)

// migrateCommand マイグレーション実行コマンド
func migrateCommand() *cobra.Command {
	var dropDB bool

	cmd := cobra.Command{
		Use:   "migrate",
		Short: "Execute database schema migration only",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := c.getDatabase(logger.Default)
			if err != nil {
				return err
			}
			db, err := engine.DB()
			if err != nil {
				return err
			}
			defer db.Close()
			if dropDB {
				if err := migration.DropAll(engine); err != nil {
					return err
				}
			}
			return migration.Migrate(engine)
		},
	}

	cmd.Flags().BoolVar(&dropDB, "reset", false, "whether to truncate database (drop all tables)")
	return &cmd
}
