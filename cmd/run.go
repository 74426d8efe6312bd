package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/qian20010413/xinyunxuexi/internal/app"
	"github.com/qian20010413/xinyunxuexi/internal/gen"
	"github.com/qian20010413/xinyunxuexi/internal/ledger"
	"github.com/qian20010413/xinyunxuexi/internal/llm"
	"github.com/qian20010413/xinyunxuexi/internal/session"
	"github.com/qian20010413/xinyunxuexi/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	led, err := ledger.Open(st)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}

	opts := app.Options{Ledger: led}

	var source session.Source
	if aiMode, _ := cmd.Flags().GetBool("ai"); aiMode {
		cfg, ok := llm.DiscoverConfig()
		if !ok {
			fmt.Fprintln(os.Stderr, "未检测到模型 API key，改用内置题库出题。")
		} else if provider, err := llm.NewProvider(ctx, cfg, st); err != nil {
			fmt.Fprintln(os.Stderr, "AI 出题不可用：", err)
			fmt.Fprintln(os.Stderr, "改用内置题库出题。")
		} else {
			source = gen.NewAISource(provider)
			opts.AIMode = true
		}
	}
	if source == nil {
		rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		source = gen.NewSynthesizer(rng)
	}

	opts.Engine = session.New(source, led)
	return app.Run(opts)
}
