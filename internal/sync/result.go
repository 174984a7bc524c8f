package sync

// Mode identifies the kind of run that produced a Result.
type Mode string

const (
	// ModeSync writes destinations.
	ModeSync Mode = "sync"
	// ModeCheck audits destinations without writing.
	ModeCheck Mode = "check"
)

// Status classifies the outcome for one (source file, target key) pair.
type Status string

const (
	// StatusCreated means the destination did not exist and was written.
	StatusCreated Status = "created"
	// StatusUnchanged means the destination already held the expected content.
	StatusUnchanged Status = "unchanged"
	// StatusWarning means the destination differed and was overwritten.
	StatusWarning Status = "warning"

	// StatusInSync means the destination holds the expected content.
	StatusInSync Status = "in_sync"
	// StatusDrift means the destination differs from the expected content.
	StatusDrift Status = "drift"
	// StatusMissing means the destination does not exist.
	StatusMissing Status = "missing"
)

// Detail messages attached to records.
const (
	DetailOverwritten = "Target file had local modifications that were overwritten"
	DetailMissing     = "Target file does not exist"
)

// Statuses returns the statuses a mode can produce, in report order.
func (m Mode) Statuses() []Status {
	if m == ModeCheck {
		return []Status{StatusInSync, StatusDrift, StatusMissing}
	}
	return []Status{StatusCreated, StatusUnchanged, StatusWarning}
}

// Record is the outcome for one (source file, target key) pair.
type Record struct {
	// SourceRelative is the source path relative to the repository root.
	SourceRelative string `json:"source" yaml:"source"`
	// TargetRelative is the destination path relative to the repository root.
	TargetRelative string `json:"target" yaml:"target"`
	// TargetKey names the target the destination belongs to.
	TargetKey string `json:"target_key" yaml:"target_key"`
	// Status is the classification.
	Status Status `json:"status" yaml:"status"`
	// Detail explains warnings, drift and missing destinations.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
	// Diff is a unified diff from the destination to the expected content,
	// set for warnings and drift when Options.Diff is on.
	Diff string `json:"diff,omitempty" yaml:"diff,omitempty"`
}

// Result holds every Record of a run, in traversal order.
type Result struct {
	Mode    Mode
	Records []Record
}

// Count returns the number of records with the given status.
func (r *Result) Count(status Status) int {
	n := 0
	for _, rec := range r.Records {
		if rec.Status == status {
			n++
		}
	}
	return n
}

// Total returns the number of records.
func (r *Result) Total() int {
	return len(r.Records)
}

// Warnings returns the records whose destination was overwritten.
func (r *Result) Warnings() []Record {
	return r.filter(func(rec Record) bool { return rec.Status == StatusWarning })
}

// Problems returns the records that fail the check gate.
func (r *Result) Problems() []Record {
	return r.filter(func(rec Record) bool { return rec.Status == StatusDrift || rec.Status == StatusMissing })
}

// OK reports whether the run passes. Sync runs always pass; check runs pass
// only when every record is in sync.
func (r *Result) OK() bool {
	if r.Mode != ModeCheck {
		return true
	}
	for _, rec := range r.Records {
		if rec.Status != StatusInSync {
			return false
		}
	}
	return true
}

// ForTarget returns the records of one target key.
func (r *Result) ForTarget(key string) []Record {
	return r.filter(func(rec Record) bool { return rec.TargetKey == key })
}

func (r *Result) filter(keep func(Record) bool) []Record {
	var out []Record
	for _, rec := range r.Records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}
