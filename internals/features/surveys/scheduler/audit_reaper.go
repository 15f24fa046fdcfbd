package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"surveikita_web/internals/configs"
)

// AuditPurger menghapus audit relay yang lebih tua dari cutoff.
type AuditPurger interface {
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type AuditReaperConfig struct {
	RetentionDays int
	CronSchedule  string
}

func AuditReaperConfigFromEnv() AuditReaperConfig {
	return AuditReaperConfig{
		RetentionDays: configs.GetEnvInt("RELAY_AUDIT_TTL_DAYS", 30),
		CronSchedule:  configs.GetEnv("RELAY_AUDIT_CRON", "15 2 * * *"),
	}
}

// StartAuditReaperCron: panggil dari main.go setelah DB siap. Stop() cron saat shutdown.
func StartAuditReaperCron(store AuditPurger, cfg AuditReaperConfig) (*cron.Cron, error) {
	log := zap.L().Named("audit-reaper")

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(cfg.CronSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
		defer cancel()
		if _, err := RunAuditReaper(ctx, store, cfg.RetentionDays, time.Now()); err != nil {
			log.Error("purge gagal", zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}

	log.Info("started", zap.String("schedule", cfg.CronSchedule), zap.Int("retention_days", cfg.RetentionDays))
	c.Start()
	return c, nil
}

// RunAuditReaper menjalankan satu putaran purge. retentionDays <= 0 berarti tidak menghapus apa pun.
func RunAuditReaper(ctx context.Context, store AuditPurger, retentionDays int, now time.Time) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := now.Add(-time.Duration(retentionDays) * 24 * time.Hour)
	n, err := store.PurgeBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	zap.L().Named("audit-reaper").Info("audit relay dihapus",
		zap.Int64("rows", n), zap.Time("cutoff", cutoff))
	return n, nil
}
