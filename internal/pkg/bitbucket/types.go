package bitbucket

type bbProject struct {
	Key string `json:"key"`
}

type bbRefRepository struct {
	Slug    string    `json:"slug"`
	Name    string    `json:"name"`
	Project bbProject `json:"project"`
}

type bbRef struct {
	ID         string          `json:"id"`
	Repository bbRefRepository `json:"repository"`
}

type bbUserRef struct {
	Name string `json:"name"`
}

type bbReviewerRef struct {
	User bbUserRef `json:"user"`
}

type bbPROptions struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	State       string          `json:"state"`
	Open        bool            `json:"open"`
	Closed      bool            `json:"closed"`
	FromRef     bbRef           `json:"fromRef"`
	ToRef       bbRef           `json:"toRef"`
	Locked      bool            `json:"locked"`
	Reviewers   []bbReviewerRef `json:"reviewers"`
}

type bbMergeOptions struct {
	AutoSubject bool   `json:"autoSubject"`
	Message     string `json:"message"`
}

type bbVersion struct {
	Version int `json:"version"`
}

type bbParticipant struct {
	User     bbUserRef `json:"user"`
	Approved bool      `json:"approved"`
	Status   string    `json:"status"`
}

type bbDeleteBranch struct {
	Name   string `json:"name"`
	DryRun bool   `json:"dryRun"`
}
