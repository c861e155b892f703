package domain

// ProdName is the reserved environment name for the production target.
// Every other name is treated as non-production regardless of any flag
// the platform reports.
const ProdName = "prod"

// EnvKind classifies an environment. It is resolved exactly once, when
// an Environment value is built from an API response, so policy checks
// never compare name strings.
type EnvKind string

const (
	Production    EnvKind = "production"
	NonProduction EnvKind = "non_production"
)

// KindOf resolves the kind for an environment name.
func KindOf(name string) EnvKind {
	if name == ProdName {
		return Production
	}
	return NonProduction
}

type Application struct {
	UUID  string `json:"uuid"`
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
}

type Environment struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Kind    EnvKind `json:"-"`
	VCSPath string  `json:"vcs_path,omitempty"`
	SSHURL  string  `json:"ssh_url,omitempty"`
	// LiveDev mirrors the platform's own flag; Kind is authoritative
	// for policy decisions.
	LiveDev bool `json:"live_dev,omitempty"`
}

// Resolve fills the derived fields after decoding.
func (e *Environment) Resolve() {
	e.Kind = KindOf(e.Name)
}

type Database struct {
	Name         string `json:"name"`
	InstanceName string `json:"instance_name,omitempty"`
}

type Domain struct {
	Name string `json:"name"`
}

type Server struct {
	Name string `json:"name"`
	FQDN string `json:"fqdn"`
	Role string `json:"role,omitempty"`
}

// TaskStateDone is the only terminal state the platform reports for a
// successful task. Any other terminal state is a failure.
const TaskStateDone = "done"

// Task is the platform's handle for one asynchronous unit of submitted
// work. It is only ever observed, never mutated locally.
type Task struct {
	ID          int64  `json:"id"`
	Queue       string `json:"queue,omitempty"`
	Description string `json:"description,omitempty"`
	State       string `json:"state"`
	Completed   bool   `json:"completed"`
	CreatedAt   int64  `json:"created_at,omitempty"`
	StartedAt   int64  `json:"started_at,omitempty"`
	FinishedAt  int64  `json:"finished_at,omitempty"`
	Logs        string `json:"logs,omitempty"`
}

// Succeeded reports whether a completed task finished in the success
// state. Meaningless before Completed is true.
func (t Task) Succeeded() bool {
	return t.State == TaskStateDone
}

// AuditEvent is one row of the local audit log of orchestrated
// operations.
type AuditEvent struct {
	ID          int64  `json:"id"`
	TS          string `json:"ts"`
	Type        string `json:"type"`
	AppID       string `json:"app_id,omitempty"`
	Environment string `json:"environment,omitempty"`
	Payload     string `json:"payload_json"`
}
