package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mistakesCmd = &cobra.Command{
	Use:   "mistakes",
	Short: "查看或清空错题本",
	RunE: func(cmd *cobra.Command, args []string) error {
		led, closeFn, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		if clear, _ := cmd.Flags().GetBool("clear"); clear {
			if err := led.ClearMistakes(); err != nil {
				return fmt.Errorf("clear mistakes: %w", err)
			}
			fmt.Println("错题本已清空。")
			return nil
		}

		entries := led.Mistakes()
		if len(entries) == 0 {
			fmt.Println("错题本是空的。")
			return nil
		}

		for i, e := range entries {
			fmt.Printf("%d. [%s] %s\n", i+1, e.Question.Subject.Label(), e.Question.Content)
			fmt.Printf("   你的答案：%s    正确答案：%s\n", e.UserAnswer, e.Question.CorrectAnswer)
		}
		return nil
	},
}

func init() {
	mistakesCmd.Flags().Bool("clear", false, "清空错题本")
}
