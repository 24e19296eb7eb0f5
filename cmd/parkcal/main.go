package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/parkcal/internal/calendar"
	"github.com/username/parkcal/internal/config"
	"github.com/username/parkcal/internal/parkapi"
	"github.com/username/parkcal/internal/planner"
	"github.com/username/parkcal/internal/prompt"
	"github.com/username/parkcal/pkg/dateutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	logger     *zap.Logger
	userPrompt prompt.UserPrompt
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "parkcal",
		Short: "Park booking calendar client",
		Long:  "Inspect and manage the park's booking calendar: availability, per-day limits and the global booking restriction",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			userPrompt = prompt.NewTerminal(os.Stdin, os.Stdout)

			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger()
				}
			} else {
				initLogger()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(monthCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(setStatusCmd())
	rootCmd.AddCommand(setLimitCmd())
	rootCmd.AddCommand(setGlobalLimitCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initLogger sets up console logging
func initLogger() {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
}

// initFileLogger sets up rotating file logging
func initFileLogger(logFile, logLevel string) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if logLevel != "" {
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			level = zapcore.InfoLevel
		}
	}

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
		Compress:   true,
	})

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		writer,
		level,
	)

	return zap.New(core), nil
}

// initializePlanner wires the token store, API client and planner from
// config.
func initializePlanner(cfg *config.Config) (*planner.Planner, *parkapi.TokenStore, error) {
	store := parkapi.NewTokenStore(cfg.Auth.TokenFile)

	session, err := store.Load()
	if err != nil {
		return nil, nil, err
	}

	client := parkapi.NewClient(cfg.API.BaseURL, session, logger).
		WithTimeout(cfg.API.GetTimeout())

	return planner.New(client, logger), store, nil
}

// report surfaces a failure as a blocking notification. An expired token
// additionally clears the stored token and points the user at sign-in.
func report(cfg *config.Config, store *parkapi.TokenStore, operation string, err error) error {
	if errors.Is(err, parkapi.ErrTokenExpired) {
		if clearErr := store.Clear(); clearErr != nil {
			logger.Warn("Failed to clear stored token", zap.Error(clearErr))
		}
		userPrompt.Notify(fmt.Sprintf("Your session has expired. Sign in again at %s and run 'parkcal login <token>'.", cfg.Auth.SignInURL))
		return err
	}

	userPrompt.Notify(fmt.Sprintf("%s failed: %v", operation, err))
	return err
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <token>",
		Short: "Store the bearer token for authenticated requests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			session := parkapi.NewAuthSession(args[0])
			if !session.Valid(time.Now()) {
				return fmt.Errorf("token is already expired")
			}

			store := parkapi.NewTokenStore(cfg.Auth.TokenFile)
			if err := store.Save(args[0]); err != nil {
				return err
			}

			userPrompt.Notify("Token stored.")
			return nil
		},
	}
}

func monthCmd() *cobra.Command {
	var year, month int
	var admin bool

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show the availability calendar for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			p, store, err := initializePlanner(cfg)
			if err != nil {
				return err
			}

			policy := calendar.VisitorPolicy
			if admin {
				policy = calendar.AdminPolicy
			}

			view, err := p.MonthView(year, time.Month(month), policy)
			if err != nil {
				return report(cfg, store, "fetch calendar month", err)
			}

			printMonth(cmd, view)
			return nil
		},
	}

	now := time.Now()
	cmd.Flags().IntVar(&year, "year", now.Year(), "Calendar year")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "Calendar month (1-12)")
	cmd.Flags().BoolVar(&admin, "admin", false, "Use the admin view (no booking cutoff, weekends open by default)")

	return cmd
}

// printMonth renders the month as a weekday grid with a status mark per
// day, followed by a legend.
func printMonth(cmd *cobra.Command, view *planner.MonthView) {
	cmd.Printf("%s %d\n", view.Month, view.Year)
	cmd.Println(" Su  Mo  Tu  We  Th  Fr  Sa")

	cell := strings.Repeat("    ", view.FirstWeekday)
	weekday := view.FirstWeekday

	for _, day := range view.Days {
		cell += fmt.Sprintf("%3d%s", day.Day, markFor(day))
		weekday++
		if weekday == 7 {
			cmd.Println(cell)
			cell = ""
			weekday = 0
		}
	}
	if cell != "" {
		cmd.Println(cell)
	}

	cmd.Println()
	cmd.Println("legend: ' ' available, '~' limited, '#' fully booked, 'x' closed")

	for _, day := range view.Days {
		if !day.LimitKnown {
			cmd.Println("note: booking limits unknown until the global restriction loads")
			break
		}
	}
}

func markFor(day calendar.DayDescriptor) string {
	switch day.Color {
	case calendar.ColorLimited:
		return "~"
	case calendar.ColorFullyBooked:
		return "#"
	case calendar.ColorClosed:
		return "x"
	default:
		return " "
	}
}

func statsCmd() *cobra.Command {
	var year, month, day int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show bookings and visitors for a month or a single day",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			p, store, err := initializePlanner(cfg)
			if err != nil {
				return err
			}

			var selected *int
			if day > 0 {
				selected = &day
			}

			stats, err := p.Stats(year, time.Month(month), selected)
			if err != nil {
				return report(cfg, store, "fetch calendar stats", err)
			}

			cmd.Printf("%s: %d bookings, %d visitors\n", stats.Label, stats.Bookings, stats.Visitors)
			return nil
		},
	}

	now := time.Now()
	cmd.Flags().IntVar(&year, "year", now.Year(), "Calendar year")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "Calendar month (1-12)")
	cmd.Flags().IntVar(&day, "day", 0, "Day of month; omit for month totals")

	return cmd
}

func setStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <YYYY-MM-DD> <AVAILABLE|FULLY_BOOKED|CLOSED>",
		Short: "Set a day's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			year, month, day, err := dateutil.ParseISODate(args[0])
			if err != nil {
				return err
			}

			status, err := parseStatus(args[1])
			if err != nil {
				return err
			}

			if status == calendar.StatusClosed {
				if !userPrompt.Confirm(fmt.Sprintf("Close %s for bookings?", args[0])) {
					userPrompt.Notify("Cancelled.")
					return nil
				}
			}

			p, store, err := initializePlanner(cfg)
			if err != nil {
				return err
			}

			if err := p.SetDayStatus(year, month, day, status); err != nil {
				return report(cfg, store, "update calendar day", err)
			}

			userPrompt.Notify(fmt.Sprintf("%s set to %s.", args[0], status))
			return nil
		},
	}
}

func parseStatus(s string) (calendar.DayStatus, error) {
	switch calendar.DayStatus(strings.ToUpper(s)) {
	case calendar.StatusAvailable:
		return calendar.StatusAvailable, nil
	case calendar.StatusFullyBooked:
		return calendar.StatusFullyBooked, nil
	case calendar.StatusClosed:
		return calendar.StatusClosed, nil
	default:
		return "", fmt.Errorf("unknown status %q (want AVAILABLE, FULLY_BOOKED or CLOSED)", s)
	}
}

func setLimitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-limit <YYYY-MM-DD> <limit>",
		Short: "Set a day's booking-limit override",
		Long:  "Writes an explicit per-day booking limit. The day stops inheriting the global restriction; there is no way to switch it back.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			year, month, day, err := dateutil.ParseISODate(args[0])
			if err != nil {
				return err
			}

			limit, err := strconv.Atoi(args[1])
			if err != nil || limit < 0 {
				return fmt.Errorf("limit must be a non-negative integer, got %q", args[1])
			}

			p, store, err := initializePlanner(cfg)
			if err != nil {
				return err
			}

			if err := p.SetDayLimit(year, month, day, limit); err != nil {
				return report(cfg, store, "update booking limit", err)
			}

			userPrompt.Notify(fmt.Sprintf("%s booking limit set to %d.", args[0], limit))
			return nil
		},
	}
}

func setGlobalLimitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-global-limit <limit>",
		Short: "Set the global booking_limit restriction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			limit, err := strconv.Atoi(args[0])
			if err != nil || limit < 0 {
				return fmt.Errorf("limit must be a non-negative integer, got %q", args[0])
			}

			if !userPrompt.Confirm(fmt.Sprintf("Change the global booking limit to %d for every day without an override?", limit)) {
				userPrompt.Notify("Cancelled.")
				return nil
			}

			p, store, err := initializePlanner(cfg)
			if err != nil {
				return err
			}

			if err := p.SetGlobalLimit(limit); err != nil {
				return report(cfg, store, "update global booking limit", err)
			}

			userPrompt.Notify(fmt.Sprintf("Global booking limit set to %d.", limit))
			return nil
		},
	}
}
