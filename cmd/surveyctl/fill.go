package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"surveikita_web/internals/features/surveys/collector"
	"surveikita_web/internals/features/surveys/normalizer"
	"surveikita_web/internals/features/surveys/service"
)

// AnswersFile adalah isi file YAML untuk perintah fill.
//
//	respondent:
//	  name: Budi
//	  job: Wiraswasta
//	  gender: Laki-laki
//	  age: "34"
//	  education: D4/S1
//	consent: true
//	answers:
//	  a1: Setuju
//	  a2: Netral
type AnswersFile struct {
	Respondent collector.Respondent `yaml:"respondent"`
	Consent    bool                 `yaml:"consent"`
	Answers    map[string]string    `yaml:"answers"`
}

func loadAnswersFile(r io.Reader) (AnswersFile, error) {
	var f AnswersFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return AnswersFile{}, fmt.Errorf("file jawaban tidak valid: %w", err)
	}
	return f, nil
}

type surveyFetcher interface {
	FetchBySlug(ctx context.Context, surveyID, slug string) (normalizer.Survey, error)
}

type fillConfig struct {
	SurveyID string
	Slug     string
	Answers  AnswersFile
	Surveys  surveyFetcher
	Relay    collector.Submitter
	SiteURL  string
	Timeout  time.Duration
	Options  collector.Options
	DryRun   bool
}

var (
	answersPath string
	dryRun      bool
)

var fillCmd = &cobra.Command{
	Use:   "fill <survey-id> <survey-slug> -f answers.yaml",
	Short: "Isi survey dari file YAML dan kirim lewat relay situs",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := os.Open(answersPath)
		if err != nil {
			return err
		}
		answers, err := loadAnswersFile(file)
		_ = file.Close()
		if err != nil {
			return err
		}

		// Ctrl-C saat menunggu redirect membatalkan navigasi
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runFill(ctx, cmd.OutOrStdout(), fillConfig{
			SurveyID: args[0],
			Slug:     args[1],
			Answers:  answers,
			Surveys:  service.NewSurveyClient(func() string { return strings.TrimRight(apiBase, "/") }),
			Relay:    service.NewRelayClient(siteURL),
			SiteURL:  strings.TrimRight(siteURL, "/"),
			Timeout:  timeout,
			DryRun:   dryRun,
		})
	},
}

func init() {
	fillCmd.Flags().StringVarP(&answersPath, "file", "f", "", "File YAML berisi responden & jawaban (wajib)")
	fillCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validasi & cetak payload JSON tanpa mengirim")
	_ = fillCmd.MarkFlagRequired("file")
}

func runFill(ctx context.Context, out io.Writer, cfg fillConfig) error {
	log := zap.L().Named("fill")

	fetchCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	survey, err := cfg.Surveys.FetchBySlug(fetchCtx, cfg.SurveyID, cfg.Slug)
	cancel()
	if err != nil {
		return err
	}
	if !survey.Active {
		return fmt.Errorf("survey %q dinonaktifkan", survey.Title)
	}

	navigated := make(chan string, 1)
	nav := collector.NavigatorFunc(func(to string) { navigated <- to })

	sess := collector.NewSession(cfg.SurveyID, survey.Groups, cfg.Relay, nav, cfg.Options)
	defer sess.Close()

	if err := applyAnswers(sess, cfg.Answers); err != nil {
		return err
	}
	log.Debug("jawaban dimuat", zap.Int("answers", len(cfg.Answers.Answers)), zap.Strings("missing", sess.Missing()))

	if cfg.DryRun {
		if p := sess.Validate(); p != nil {
			printProblem(out, sess, p)
			return p
		}
		raw, err := sonic.Marshal(sess.Payload())
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(raw))
		return nil
	}

	submitCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	err = sess.Submit(submitCtx)
	cancel()

	var problem *collector.Problem
	if errors.As(err, &problem) {
		printProblem(out, sess, problem)
		return problem
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ %s\n  %s\n", collector.SuccessTitle, sess.Notice())

	select {
	case to := <-navigated:
		fmt.Fprintf(out, "→ %s%s\n", cfg.SiteURL, to)
	case <-ctx.Done():
		sess.Close()
		fmt.Fprintln(out, "navigasi dibatalkan")
	}
	return nil
}

func printProblem(out io.Writer, sess *collector.Session, p *collector.Problem) {
	fmt.Fprintf(out, "✗ %s\n  %s\n", p.Title, p.Message)
	if p.Kind == collector.ProblemSurveyIncomplete {
		fmt.Fprintf(out, "  belum dijawab: %s\n", strings.Join(sess.Missing(), ", "))
	}
}

func applyAnswers(sess *collector.Session, f AnswersFile) error {
	if err := sess.SetRespondent(f.Respondent); err != nil {
		return err
	}
	if err := sess.SetConsent(f.Consent); err != nil {
		return err
	}

	ids := make([]string, 0, len(f.Answers))
	for id := range f.Answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		v := strings.TrimSpace(f.Answers[id])
		if v != "" && !slices.Contains(collector.AnswerOptions, v) {
			return fmt.Errorf("jawaban %q untuk %s harus salah satu dari: %s",
				v, id, strings.Join(collector.AnswerOptions, ", "))
		}
		if err := sess.Answer(id, v); err != nil {
			return err
		}
	}
	return nil
}
