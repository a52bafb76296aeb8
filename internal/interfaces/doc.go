// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - KV: String key-value persistence behind every preference store (internal/preferences/store.go)
//   - Pinger: Storage connectivity for health checks (internal/http/stores.go)
//
// ## External Service Interfaces
//
//   - CatalogReader: The remote textbook catalog (internal/http/stores.go)
//
// ## Reminder Interfaces
//
//   - reminder.Store: Persisted reminder state (internal/reminder/reminder.go)
//   - reminder.Platform: Local notification scheduling (internal/reminder/reminder.go)
//   - scheduler.Dispatcher: Where a fired notification goes (internal/scheduler/notifications.go)
//   - tasks.Sink: Final delivery of a reminder (internal/tasks/deliver_reminder.go)
//
// # Adding a New Preference
//
//  1. Add the storage key to internal/entities/setting.go.
//
//  2. Add a store in internal/preferences/ that embeds *store, decodes the key
//     in its decode func and writes through store.set:
//
//     type StreakStore struct {
//         *store
//         goal int
//     }
//
//     func (s *StreakStore) SetGoal(goal int) {
//         s.set(entities.SettingKeyStreakGoal, strconv.Itoa(goal), func() { s.goal = goal })
//     }
//
//  3. Register it in Settings.stores() so it is loaded, flushed and closed
//     with the others.
//
//  4. Expose it in internal/http/settings.go and internal/cli/prefs.go.
//
// # Adding a New Reminder Sink
//
//  1. Implement tasks.Sink in internal/tasks/:
//
//     type PushSink struct{ client *push.Client }
//
//     func (s *PushSink) Deliver(ctx context.Context, task DeliverReminderTask) error
//
//  2. Add it to the sinks built in entrypoint.go.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
