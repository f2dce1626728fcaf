package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"zfit-backend-go/internal/ai"
	"zfit-backend-go/internal/config"
	"zfit-backend-go/internal/db"
	"zfit-backend-go/internal/foodref"
	httpapi "zfit-backend-go/internal/http"
	"zfit-backend-go/internal/migrations"
	"zfit-backend-go/internal/services"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "zfit",
	Short: "zfit is a fitness and nutrition tracking backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		database, err := db.Open(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := migrations.Apply(database); err != nil {
			return err
		}
		fmt.Println("migrations applied")
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the database file and recreate the schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := db.Reset(cfg.DatabasePath); err != nil {
			return err
		}
		database, err := db.Open(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := migrations.Apply(database); err != nil {
			return err
		}
		if err := services.EnsureExerciseCatalog(database); err != nil {
			return err
		}
		fmt.Println("database reset")
		return nil
	},
}

var statsUser string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print workout statistics for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		database, err := db.Open(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer database.Close()
		return printStats(database, statsUser)
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsUser, "user", "", "Username to report on")
	_ = statsCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(serveCmd, migrateCmd, resetCmd, statsCmd)
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve() error {
	cfg := config.Load()

	cleanupLogs, err := setupLogger()
	if err != nil {
		logrus.WithError(err).Warn("logger setup failed")
	} else {
		defer cleanupLogs()
	}

	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		logrus.WithError(err).Fatal("open database")
	}
	if err := migrations.Apply(database); err != nil {
		logrus.WithError(err).Fatal("apply migrations")
	}
	if err := services.EnsureExerciseCatalog(database); err != nil {
		logrus.WithError(err).Fatal("seed exercise catalog")
	}

	foods, err := foodref.Load(cfg.FoodReferencePath)
	if err != nil {
		logrus.WithError(err).Warn("food reference unavailable, food lookup endpoints will be empty")
		foods = &foodref.Table{}
	} else {
		logrus.WithField("foods", foods.Len()).Info("food reference loaded")
	}

	var aiClient *ai.Client
	if cfg.GeminiAPIKey != "" {
		aiClient = ai.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiVisionModel)
		logrus.Info("AI assistant enabled")
	} else {
		logrus.Warn("GEMINI_API_KEY not set, AI assistant routes will answer 503")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := services.NewMetricsHub()
	go hub.Run(ctx)

	server := httpapi.NewServer(database, cfg, foods, aiClient, hub)
	go metricsLoop(ctx, server)

	addr := ":8080"
	if value := os.Getenv("PORT"); value != "" {
		addr = ":" + value
	}
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Router(),
	}

	go func() {
		logrus.WithField("addr", addr).Info("listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop
	cancel()
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = httpServer.Shutdown(ctxShutdown)
	logrus.Info("shutdown complete")
	return nil
}

func setupLogger() (func(), error) {
	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "storage/logs"
	}
	retentionDays := 7
	if value := os.Getenv("LOG_RETENTION_DAYS"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil && parsed > 0 {
			if parsed > 7 {
				parsed = 7
			}
			retentionDays = parsed
		}
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}

	var mu sync.Mutex
	currentDate := time.Now().Format("2006-01-02")
	file, err := openLogFile(logDir, currentDate)
	if err != nil {
		return nil, err
	}
	logrus.SetOutput(io.MultiWriter(os.Stdout, file))
	cleanupOldLogs(logDir, retentionDays)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				date := time.Now().Format("2006-01-02")
				mu.Lock()
				if date != currentDate {
					newFile, err := openLogFile(logDir, date)
					if err == nil {
						logrus.SetOutput(io.MultiWriter(os.Stdout, newFile))
						_ = file.Close()
						file = newFile
						currentDate = date
						cleanupOldLogs(logDir, retentionDays)
					}
				}
				mu.Unlock()
			case <-ctx.Done():
				return
			}
		}
	}()

	return func() {
		cancel()
		mu.Lock()
		_ = file.Close()
		mu.Unlock()
	}, nil
}

func openLogFile(logDir, date string) (*os.File, error) {
	filename := filepath.Join(logDir, fmt.Sprintf("app-%s.log", date))
	return os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

func cleanupOldLogs(logDir string, retentionDays int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -(retentionDays - 1))
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() {
			continue
		}
		if !strings.HasPrefix(name, "app-") || !strings.HasSuffix(name, ".log") {
			continue
		}
		datePart := strings.TrimSuffix(strings.TrimPrefix(name, "app-"), ".log")
		logDate, err := time.Parse("2006-01-02", datePart)
		if err != nil {
			continue
		}
		if logDate.Before(cutoff) {
			_ = os.Remove(filepath.Join(logDir, name))
		}
	}
}

func metricsLoop(ctx context.Context, server *httpapi.Server) {
	ticker := time.NewTicker(time.Duration(server.Config.MetricsSampleSeconds) * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			sample, err := services.CaptureMetrics(server.DB, server.Config.MetricsDiskPath)
			if err != nil {
				logrus.WithError(err).Warn("metrics capture")
				continue
			}
			server.MetricsHub.Broadcast(sample)
		case <-ctx.Done():
			return
		}
	}
}

func printStats(database *sqlx.DB, username string) error {
	user, err := services.GetUserByUsername(database, username)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %q not found", username)
	}
	stats, err := services.GetWorkoutStatistics(database, user.ID)
	if err != nil {
		return err
	}
	if stats == nil {
		fmt.Printf("%s has no logged workouts yet\n", username)
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Metric", "Value"})
	tw.AppendRows([]table.Row{
		{"Total workouts", stats.TotalWorkouts},
		{"Workouts this month", stats.WorkoutsThisMonth},
		{"Avg duration (min)", stats.AvgDurationMinutes},
		{"Consistency (%)", stats.Consistency},
	})
	tw.Render()

	if len(stats.MuscleGroups) > 0 {
		mg := table.NewWriter()
		mg.SetOutputMirror(os.Stdout)
		mg.SetStyle(table.StyleRounded)
		mg.AppendHeader(table.Row{"Muscle group", "Sets"})
		for _, group := range stats.MuscleGroups {
			mg.AppendRow(table.Row{group.Label, group.Count})
		}
		mg.Render()
	}
	return nil
}
