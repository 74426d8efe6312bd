package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qian20010413/xinyunxuexi/internal/ledger"
	"github.com/qian20010413/xinyunxuexi/internal/quiz"
	"github.com/qian20010413/xinyunxuexi/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "打印学习统计",
	RunE: func(cmd *cobra.Command, args []string) error {
		led, closeFn, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		totals := led.Totals()
		if totals.Answered == 0 {
			fmt.Println("还没有练习记录。")
			return nil
		}

		fmt.Printf("共练习 %d 题，答对 %d 题，正确率 %d%%\n",
			totals.Answered, totals.Correct, totals.Correct*100/totals.Answered)

		for _, subject := range quiz.AllSubjects {
			st, ok := totals.Subjects[subject]
			if !ok || st.Answered == 0 {
				continue
			}
			fmt.Printf("  %s：%d 题，正确率 %d%%\n",
				subject.Label(), st.Answered, st.Correct*100/st.Answered)
		}

		daily := led.Daily()
		if len(daily) > 0 {
			fmt.Println("\n最近记录：")
			start := len(daily) - 7
			if start < 0 {
				start = 0
			}
			for _, d := range daily[start:] {
				fmt.Printf("  %s  %d 题，答对 %d\n", d.Date, d.Answered, d.Correct)
			}
		}
		return nil
	},
}

// openLedger opens the store and ledger for one-shot CLI commands.
func openLedger(cmd *cobra.Command) (*ledger.Ledger, func(), error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	led, err := ledger.Open(st)
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("open ledger: %w", err)
	}
	return led, func() { st.Close() }, nil
}
