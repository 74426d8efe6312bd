package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qian20010413/xinyunxuexi/internal/quiz"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "重置已练过的题库（题目可再次抽到）",
	RunE: func(cmd *cobra.Command, args []string) error {
		led, closeFn, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		subjects := quiz.AllSubjects
		if name, _ := cmd.Flags().GetString("subject"); name != "" {
			s := quiz.Subject(name)
			if !s.Valid() {
				return fmt.Errorf("unknown subject %q (math/chinese/english)", name)
			}
			subjects = []quiz.Subject{s}
		}

		for _, s := range subjects {
			if err := led.ResetUsedIDs(s); err != nil {
				return fmt.Errorf("reset %s: %w", s, err)
			}
			fmt.Printf("%s题库已重置。\n", s.Label())
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().String("subject", "", "只重置指定科目 (math/chinese/english)")
}
