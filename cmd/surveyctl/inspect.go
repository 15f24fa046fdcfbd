package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"surveikita_web/internals/features/surveys/normalizer"
	"surveikita_web/internals/features/surveys/service"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <survey-id> <survey-slug>",
	Short: "Tampilkan daftar pertanyaan survey yang sudah dinormalisasi",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		client := service.NewSurveyClient(func() string { return strings.TrimRight(apiBase, "/") })
		survey, err := client.FetchBySlug(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		printSurvey(cmd.OutOrStdout(), survey)
		return nil
	},
}

func printSurvey(w io.Writer, s normalizer.Survey) {
	status := "aktif"
	if !s.Active {
		status = "nonaktif"
	}
	fmt.Fprintf(w, "%s (%s, bentuk: %s)\n", s.Title, status, s.Shape)
	if s.Description != "" {
		fmt.Fprintln(w, s.Description)
	}

	n := 0
	for _, g := range s.Groups {
		fmt.Fprintf(w, "\n[%s]\n", g.Name)
		for _, sa := range g.SubAspects {
			n++
			fmt.Fprintf(w, "  %d. %s  (id: %s)\n", n, sa.Label, sa.ID)
		}
	}
	if n == 0 {
		fmt.Fprintln(w, "\n(tidak ada pertanyaan)")
	}
}
