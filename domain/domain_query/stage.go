package domain_query

// ============== 查询条件 ==============

// Condition is a predicate node understood by every plan executor.
type Condition interface {
	condition()
}

// Eq matches documents whose field equals Value exactly.
type Eq struct {
	Field string
	Value interface{}
}

// Contains is a case-insensitive substring match on a string field.
type Contains struct {
	Field string
	Term  string
}

type And []Condition

type Or []Condition

func (Eq) condition()       {}
func (Contains) condition() {}
func (And) condition()      {}
func (Or) condition()       {}

// ============== 管道阶段 ==============

type StageKind string

const (
	StageMatch    StageKind = "match"
	StageLookup   StageKind = "lookup"
	StageProject  StageKind = "project"
	StageSort     StageKind = "sort"
	StagePaginate StageKind = "paginate"
)

// SortFieldLower is the derived field holding the lower-cased sort value.
const SortFieldLower = "sortFieldLower"

type Stage interface {
	Kind() StageKind
}

type MatchStage struct {
	Where And
}

// LookupStage attaches at most one document from another collection whose
// ForeignField equals the LocalField of the current document.
type LookupStage struct {
	From         string
	LocalField   string
	ForeignField string
	As           string
}

// ProjectStage derives Field as the lower-cased value of Source. Source is untouched.
type ProjectStage struct {
	Field  string
	Source string
}

// SortStage orders by Field; ties keep natural storage order.
type SortStage struct {
	Field string
	Order SortOrder
}

// PaginateStage slices the sorted set and counts it in the same pass. Omit lists
// fields dropped from the returned page.
type PaginateStage struct {
	Skip  int64
	Limit int64
	Omit  []string
}

func (MatchStage) Kind() StageKind    { return StageMatch }
func (LookupStage) Kind() StageKind   { return StageLookup }
func (ProjectStage) Kind() StageKind  { return StageProject }
func (SortStage) Kind() StageKind     { return StageSort }
func (PaginateStage) Kind() StageKind { return StagePaginate }

// Plan is the ordered stage list produced by the Builder.
type Plan struct {
	Stages []Stage
}

// Kinds lists the stage kinds in execution order.
func (p Plan) Kinds() []StageKind {
	kinds := make([]StageKind, 0, len(p.Stages))
	for _, s := range p.Stages {
		kinds = append(kinds, s.Kind())
	}
	return kinds
}
