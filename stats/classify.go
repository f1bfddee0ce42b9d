package stats

// ActorClass tells operator-run accounts from everyone else.
type ActorClass int

const (
	Community ActorClass = iota
	Team
)

func (c ActorClass) String() string {
	if c == Team {
		return "team"
	}
	return "community"
}

// Class is the uniform classification of a record from any source.
type Class struct {
	Actor      ActorClass
	ForceClose bool
}

// Classifier partitions records by actor class and force-close subtype.
type Classifier struct {
	team map[string]struct{}
}

// NewClassifier builds a classifier from the team allow-list.
func NewClassifier(teamAccounts []string) *Classifier {
	team := make(map[string]struct{}, len(teamAccounts))
	for _, a := range teamAccounts {
		team[a] = struct{}{}
	}
	return &Classifier{team}
}

// IsTeam reports whether account is on the team allow-list.
func (c *Classifier) IsTeam(account string) bool {
	_, ok := c.team[account]
	return ok
}

// Classify returns the actor class of the record's acting account and whether
// its kind is the source's force-close tag.
func (c *Classifier) Classify(r Record) Class {
	cls := Class{Actor: Community}
	if c.IsTeam(r.Actor) {
		cls.Actor = Team
	}
	cls.ForceClose = r.Kind == r.Source.ForceCloseTag()
	return cls
}
