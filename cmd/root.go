package cmd

import (
	"github.com/spf13/cobra"

	"github.com/qian20010413/xinyunxuexi/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "xinyun",
	Short: "初一同步练习终端应用",
	Long:  "心芸学习 — 面向初一学生的数学、语文、英语同步练习终端应用。",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "SQLite 数据库文件路径（优先于 XINYUN_DB 环境变量）")
	rootCmd.Flags().Bool("ai", false, "使用 AI 出题（需要配置模型 API key）")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(mistakesCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(aiCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then XINYUN_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
