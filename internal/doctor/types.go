package doctor

// IssueCategory groups findings by what they check.
type IssueCategory string

const (
	CategoryTools  IssueCategory = "tools"
	CategoryRepo   IssueCategory = "repo"
	CategoryConfig IssueCategory = "config"
	CategoryStore  IssueCategory = "store"
	CategoryReport IssueCategory = "report"
)

// Categories lists the categories in check order.
var Categories = []IssueCategory{CategoryTools, CategoryRepo, CategoryConfig, CategoryStore, CategoryReport}

// Status is the result of a single check.
type Status int

const (
	StatusOK Status = iota
	StatusWarn
	StatusError
)

// FixRemoveReport is the only automatic repair.
const FixRemoveReport = "remove_report"

// Finding is the result of one check.
type Finding struct {
	Category    IssueCategory
	Key         string // what was checked, e.g. "git" or a path
	Status      Status
	Description string
	Hint        string // what the user can do about it
	FixAction   string // set when --fix can repair it
	Path        string // file the fix acts on
}

// Stats counts findings by status.
type Stats struct {
	OK       int
	Warnings int
	Errors   int
}

// Result holds all findings of a run.
type Result struct {
	Findings []Finding
	Fixed    int
}

// Stats summarises the findings.
func (r *Result) Stats() Stats {
	var s Stats
	for _, f := range r.Findings {
		switch f.Status {
		case StatusOK:
			s.OK++
		case StatusWarn:
			s.Warnings++
		case StatusError:
			s.Errors++
		}
	}
	return s
}

// Healthy reports whether no check failed.
func (r *Result) Healthy() bool {
	return r.Stats().Errors == 0
}
