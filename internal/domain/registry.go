package domain

import "sync"

// Registry holds every activity for the lifetime of the process. The set of
// activity names is fixed at construction; only rosters mutate. Each operation
// is a short critical section behind a single mutex, so concurrent requests
// cannot interleave roster updates.
type Registry struct {
	mu         sync.Mutex
	activities map[string]*Activity
}

// NewRegistry builds a Registry from a seed set. The seed is copied so the
// caller keeps no aliases into registry state.
func NewRegistry(seed map[string]Activity) *Registry {
	activities := make(map[string]*Activity, len(seed))
	for name, activity := range seed {
		copied := activity
		copied.Participants = append([]string(nil), activity.Participants...)
		activities[name] = &copied
	}
	return &Registry{activities: activities}
}

// List returns a deep copy of every activity keyed by name.
func (r *Registry) List() map[string]Activity {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]Activity, len(r.activities))
	for name, activity := range r.activities {
		copied := *activity
		copied.Participants = append(make([]string, 0, len(activity.Participants)), activity.Participants...)
		out[name] = copied
	}
	return out
}

// SignUp appends email to the named activity's roster. The name must match
// exactly, case included. Duplicate registrations are rejected.
func (r *Registry) SignUp(name, email string) error {
	if email == "" {
		return ErrEmailRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[name]
	if !ok {
		return ErrActivityNotFound
	}
	for _, participant := range activity.Participants {
		if participant == email {
			return ErrAlreadySignedUp
		}
	}
	// TODO: MaxParticipants is not checked here, so a full activity still
	// accepts signups. Carried over from the current enrollment rules until
	// the school decides how overly popular activities should behave.
	activity.Participants = append(activity.Participants, email)
	return nil
}

// RemoveParticipant removes the single matching roster entry for email from
// the named activity.
func (r *Registry) RemoveParticipant(name, email string) error {
	if email == "" {
		return ErrEmailRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[name]
	if !ok {
		return ErrActivityNotFound
	}
	for i, participant := range activity.Participants {
		if participant == email {
			activity.Participants = append(activity.Participants[:i], activity.Participants[i+1:]...)
			return nil
		}
	}
	return ErrNotSignedUp
}

// Snapshot captures the current registry state so a test can later Restore it.
func (r *Registry) Snapshot() map[string]Activity {
	return r.List()
}

// Restore replaces all rosters with those from a previous Snapshot. Activity
// names absent from the snapshot are left untouched.
func (r *Registry) Restore(snapshot map[string]Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, saved := range snapshot {
		activity, ok := r.activities[name]
		if !ok {
			continue
		}
		activity.Participants = append([]string(nil), saved.Participants...)
	}
}
