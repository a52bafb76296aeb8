package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/mrlokans/madinah-companion/internal/config"
	"github.com/mrlokans/madinah-companion/internal/database"
	"github.com/mrlokans/madinah-companion/internal/database/settings"
	"github.com/mrlokans/madinah-companion/internal/entities"
	"github.com/mrlokans/madinah-companion/internal/preferences"
)

// PrefsCommand reads and writes stored preferences through the typed stores,
// so values are validated exactly as the server validates them.
type PrefsCommand struct {
	DatabasePath string
	Verbose      bool
	Stored       bool
	Action       string
	Key          string
	Value        string

	out io.Writer
}

func NewPrefsCommand() *PrefsCommand {
	return &PrefsCommand{}
}

func (cmd *PrefsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("prefs", flag.ExitOnError)
	fs.StringVar(&cmd.DatabasePath, "db", config.NewConfig().Database.Path, "Path to the database file")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&cmd.Stored, "stored", false, "With get, list only the rows saved in the database, without defaults")
	fs.Usage = usage(fs, "prefs [options] [get [key] | set <key> <value>]",
		"Show or change stored preferences. Keys: "+fmt.Sprint(preferenceKeys()),
		"prefs", "prefs -stored", "prefs get fontSize", "prefs set themePreference dark")

	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	cmd.Action = "get"
	if len(rest) > 0 {
		cmd.Action = rest[0]
		rest = rest[1:]
	}

	switch cmd.Action {
	case "get":
		if len(rest) > 1 {
			fs.Usage()
			return fmt.Errorf("get takes at most one key")
		}
		if len(rest) == 1 {
			cmd.Key = rest[0]
		}
	case "set":
		if len(rest) != 2 {
			fs.Usage()
			return fmt.Errorf("set requires a key and a value")
		}
		cmd.Key, cmd.Value = rest[0], rest[1]
	default:
		fs.Usage()
		return fmt.Errorf("unknown action: %s", cmd.Action)
	}

	if cmd.Stored && cmd.Action != "get" {
		return fmt.Errorf("-stored only applies to get")
	}

	if cmd.Key != "" {
		if _, ok := preferenceValue(nil, cmd.Key); !ok {
			return fmt.Errorf("unknown preference: %s", cmd.Key)
		}
	}
	return nil
}

func (cmd *PrefsCommand) Run() error {
	log := newLogger(cmd.Verbose)

	db, err := database.NewDatabase(cmd.DatabasePath, log)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	out := cmd.out
	if out == nil {
		out = os.Stdout
	}

	repo := settings.NewRepository(db.DB)
	if cmd.Stored {
		return printStored(ctx, repo, cmd.Key, out)
	}

	prefs := preferences.NewSettings(repo, preferences.NewDeviceTheme(preferences.SchemeLight), log)
	defer prefs.Close()
	prefs.Load(ctx)

	if cmd.Action == "set" {
		if err := applyPreference(prefs, cmd.Key, cmd.Value); err != nil {
			return err
		}
		if err := prefs.Flush(ctx); err != nil {
			return fmt.Errorf("failed to save preference: %w", err)
		}
		value, _ := preferenceValue(prefs, cmd.Key)
		fmt.Fprintf(out, "%s = %s\n", cmd.Key, value)
		return nil
	}

	keys := preferenceKeys()
	if cmd.Key != "" {
		keys = []string{cmd.Key}
	}
	for _, key := range keys {
		value, _ := preferenceValue(prefs, key)
		fmt.Fprintf(out, "%s = %s\n", key, value)
	}
	return nil
}

// printStored lists persisted rows as they are in the database, including
// the reminder handle, which has no typed getter.
func printStored(ctx context.Context, repo *settings.Repository, key string, out io.Writer) error {
	values, err := repo.All(ctx)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		if key == "" || k == key {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	if len(keys) == 0 {
		fmt.Fprintln(out, "No stored preferences")
		return nil
	}
	for _, k := range keys {
		fmt.Fprintf(out, "%s = %s\n", k, values[k])
	}
	return nil
}

var preferenceGetters = map[string]func(*preferences.Settings) string{
	entities.SettingKeyThemePreference: func(s *preferences.Settings) string { return string(s.Theme.Mode()) },
	entities.SettingKeyFontSize: func(s *preferences.Settings) string {
		return strconv.FormatFloat(s.FontSize.Size(), 'f', -1, 64)
	},
	entities.SettingKeySelectedFont:         func(s *preferences.Settings) string { return s.Font.Selected().ID },
	entities.SettingKeyAutoPlayAudio:        func(s *preferences.Settings) string { return strconv.FormatBool(s.Learning.AutoPlayAudio()) },
	entities.SettingKeyPronunciationSpeed:   func(s *preferences.Settings) string { return string(s.Learning.PronunciationSpeed()) },
	entities.SettingKeyShowTransliteration:  func(s *preferences.Settings) string { return strconv.FormatBool(s.Learning.ShowTransliteration()) },
	entities.SettingKeyDailyReminderEnabled: func(s *preferences.Settings) string { return strconv.FormatBool(s.Notifications.Enabled()) },
	entities.SettingKeyDailyReminderTime:    func(s *preferences.Settings) string { return s.Notifications.Time() },
}

func preferenceKeys() []string {
	keys := make([]string, 0, len(preferenceGetters))
	for key := range preferenceGetters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// preferenceValue reports whether key is known and, when s is non-nil, its
// current value.
func preferenceValue(s *preferences.Settings, key string) (string, bool) {
	get, ok := preferenceGetters[key]
	if !ok || s == nil {
		return "", ok
	}
	return get(s), true
}

// applyPreference parses value for key and writes it through the owning
// store. Enabling the daily reminder here only stores the flag; the server
// schedules it on its next start.
func applyPreference(s *preferences.Settings, key, value string) error {
	switch key {
	case entities.SettingKeyThemePreference:
		mode, err := preferences.ParseThemeMode(value)
		if err != nil {
			return err
		}
		return s.Theme.SetMode(mode)
	case entities.SettingKeyFontSize:
		size, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("font size must be a number: %w", err)
		}
		return s.FontSize.SetSize(size)
	case entities.SettingKeySelectedFont:
		return s.Font.SetFont(value)
	case entities.SettingKeyAutoPlayAudio:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false", key)
		}
		s.Learning.SetAutoPlayAudio(v)
	case entities.SettingKeyPronunciationSpeed:
		speed, err := preferences.ParsePronunciationSpeed(value)
		if err != nil {
			return err
		}
		return s.Learning.SetPronunciationSpeed(speed)
	case entities.SettingKeyShowTransliteration:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false", key)
		}
		s.Learning.SetShowTransliteration(v)
	case entities.SettingKeyDailyReminderEnabled:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false", key)
		}
		s.Notifications.SetEnabled(v)
	case entities.SettingKeyDailyReminderTime:
		return s.Notifications.SetTime(value)
	default:
		return fmt.Errorf("unknown preference: %s", key)
	}
	return nil
}
