package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qian20010413/xinyunxuexi/internal/gen"
	"github.com/qian20010413/xinyunxuexi/internal/llm"
	"github.com/qian20010413/xinyunxuexi/internal/quiz"
	"github.com/qian20010413/xinyunxuexi/internal/store"
)

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "查看 AI 出题配置与调用记录",
}

var aiStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "检查 AI 出题配置",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, ok := llm.DiscoverConfig()
		if !ok {
			fmt.Println("未检测到模型 API key。")
			fmt.Println("支持的环境变量：GEMINI_API_KEY、OPENAI_API_KEY、ANTHROPIC_API_KEY、OPENROUTER_API_KEY。")
			return nil
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("configuration invalid: %w", err)
		}
		fmt.Printf("已配置提供方：%s\n", cfg.Provider)
		return nil
	},
}

var aiTestCmd = &cobra.Command{
	Use:   "test",
	Short: "调用一次模型试出一道数学题",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, ok := llm.DiscoverConfig()
		if !ok {
			return fmt.Errorf("no model API key found, set GEMINI_API_KEY or similar")
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		provider, err := llm.NewProvider(cmd.Context(), cfg, st)
		if err != nil {
			return fmt.Errorf("build provider: %w", err)
		}

		source := gen.NewAISource(provider)
		questions, err := source.Questions(cmd.Context(), quiz.SubjectMath, 1, nil)
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}

		q := questions[0]
		fmt.Printf("[%s · %s]\n%s\n", q.Topic, q.Difficulty.Label(), q.Content)
		for _, opt := range q.Options {
			fmt.Println("  " + opt)
		}
		fmt.Printf("答案：%s\n解析：%s\n", q.CorrectAnswer, q.Explanation)
		return nil
	},
}

var aiLogCmd = &cobra.Command{
	Use:   "log",
	Short: "列出最近的模型调用",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		entries, err := st.ListAIRequests(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("list AI requests: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("还没有模型调用记录。")
			return nil
		}

		for _, e := range entries {
			status := "ok"
			if !e.Success {
				status = "failed: " + firstLine(e.ErrorMessage)
			}
			line := fmt.Sprintf("%s  %-10s %-28s %s  in=%d out=%d  %dms  %s",
				e.CreatedAt.Format("2006-01-02 15:04"),
				e.Provider, e.Model, e.Purpose,
				e.InputTokens, e.OutputTokens, e.LatencyMs, status)
			if cost := llm.LookupCost(e.Model); cost != nil && e.Success {
				line += fmt.Sprintf("  $%.4f", cost.Cost(e.InputTokens, e.OutputTokens))
			}
			fmt.Println(line)
		}
		return nil
	},
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func init() {
	aiLogCmd.Flags().Int("limit", 20, "显示条数")
	aiCmd.AddCommand(aiStatusCmd)
	aiCmd.AddCommand(aiTestCmd)
	aiCmd.AddCommand(aiLogCmd)
}
