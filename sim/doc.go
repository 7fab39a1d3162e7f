// Package sim implements a discrete-event simulation of one operating day
// in a theme park, advancing in one-minute steps.
//
// Reading guide:
//
//   - park.go is the orchestrator. Park owns every registry and advances
//     global time; Step runs the ten tick phases in a fixed order so that
//     every run with the same seed and configuration replays exactly.
//   - agent.go is the behavior model: archetype-drawn preferences, the
//     utility/softmax attraction choice, the leave decision, and the state
//     transitions the orchestrator applies.
//   - attraction.go models batch-dispatch rides with a standby queue, an
//     optional expedited queue, posted wait estimates, and the expedited
//     return-window bookkeeping.
//   - activity.go models untimed dwell locations (shows, food, shops).
//   - arrival.go turns an hourly percent schedule into per-minute Poisson
//     arrival counts.
//   - rng.go is the determinism substrate: every random draw comes from a
//     named stream derived from the master SimulationKey.
//   - history.go records the full day for reporting.
//
// Entities are referenced by dense integer ids assigned at construction;
// names exist only at the configuration and reporting boundaries.
package sim
