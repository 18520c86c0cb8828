package cmd

import (
	"fmt"

	"github.com/cwbudde/lark/internal/task"
	"github.com/spf13/cobra"
)

var schedCmd = &cobra.Command{
	Use:   "sched-demo",
	Short: "Drive the cooperative task scheduler against a scripted workload",
	Long: `sched-demo spawns a handful of hand-scripted task frames to exercise
internal/task.Scheduler: two ready tasks that round-robin, and one task
that sleeps before resuming. It has no lark source input — it is a
demonstration of the scheduler contract in spec §4.5, not a program
runner (there is no VM to drive real task bodies).`,
	RunE: runSchedDemo,
}

func init() {
	rootCmd.AddCommand(schedCmd)
}

func runSchedDemo(_ *cobra.Command, _ []string) error {
	var now float64
	sched := task.New(func() float64 { return now })

	for i := 1; i <= 2; i++ {
		n := i
		steps := 0
		sched.Spawn(nil, func(stored any) (task.YieldOp, []any, bool) {
			steps++
			fmt.Printf("task %d: step %d\n", n, steps)
			return 0, nil, steps >= 2
		})
	}

	sleeperSteps := 0
	sched.Spawn(nil, func(stored any) (task.YieldOp, []any, bool) {
		sleeperSteps++
		if sleeperSteps == 1 {
			fmt.Println("task 3: sleeping for 0.5s")
			return task.OpSleep, []any{0.5}, false
		}
		fmt.Println("task 3: resumed after sleep")
		return 0, nil, true
	})

	for !sched.Idle() {
		more, err := sched.Tick()
		if err != nil {
			return fmt.Errorf("scheduler error: %w", err)
		}
		if !more {
			now += 0.1
			if _, err := sched.PumpWaiters(); err != nil {
				return fmt.Errorf("poll error: %w", err)
			}
		}
	}

	fmt.Println("all tasks done")
	return nil
}
