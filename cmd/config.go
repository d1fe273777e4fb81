package cmd

import (
	internalApp "github.com/haierkeys/note-keeper-service/internal/app"

	"github.com/gookit/goutil/dump"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configCmd 打印合并了默认值与环境变量后的最终配置
var configCmd = &cobra.Command{
	Use:   "config [-c config_file]",
	Short: "Print the effective configuration. // 打印生效的配置。",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = findConfigFile()
		}
		if path == "" {
			bootstrapLogger.Warn("config file not found, showing built-in defaults")
			path = defaultConfigPath
			if err := writeDefaultConfig(path); err != nil {
				return err
			}
		}

		cfg, realpath, err := internalApp.LoadConfig(path)
		if err != nil {
			return err
		}
		bootstrapLogger.Info("config loaded", zap.String("path", realpath), zap.String("store", storeName(cfg)))

		// 不输出密码
		if cfg.Database.Password != "" {
			cfg.Database.Password = "******"
		}

		d := dump.NewWithOptions(func(opts *dump.Options) {
			opts.Output = cmd.OutOrStdout()
			opts.NoColor = true
			opts.ShowFlag = dump.Fnopos
		})
		d.Println(cfg)
		return nil
	},
}

func storeName(cfg *internalApp.AppConfig) string {
	if cfg.UseDatabase() {
		return "database"
	}
	return "memory"
}

func init() {
	configCmd.Flags().StringP("config", "c", "", "config file")
	rootCmd.AddCommand(configCmd)
}
