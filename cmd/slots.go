package main

import (
	"fmt"
	"text/tabwriter"

	"mealplanner/models"
	"mealplanner/utils"

	"github.com/spf13/cobra"
)

var slotsType string

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Print the time slot catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		slots := utils.GenerateTimeSlots()
		if slotsType != "" {
			t, err := models.ParseMealType(slotsType)
			if err != nil {
				return err
			}
			slots = utils.SlotsForType(t)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tSUGGESTED")
		for _, s := range slots {
			fmt.Fprintf(w, "%s\t%s\n", s.Time, s.MealType.Label())
		}
		return w.Flush()
	},
}

func init() {
	slotsCmd.Flags().StringVar(&slotsType, "type", "", "only slots suggested for this meal type")
}
