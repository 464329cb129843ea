// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Payload is implemented by every per-type extraction payload. A payload
// with HasMinimumData() == false is still a legitimate result; it signals
// "nothing usable extracted", never an error.
type Payload interface {
	HasMinimumData() bool
}

// EmailData is the structured form of an email-shaped note.
type EmailData struct {
	To      []string `json:"to,omitempty" yaml:"to,omitempty"`
	CC      []string `json:"cc,omitempty" yaml:"cc,omitempty"`
	BCC     []string `json:"bcc,omitempty" yaml:"bcc,omitempty"`
	From    string   `json:"from,omitempty" yaml:"from,omitempty"`
	Subject string   `json:"subject,omitempty" yaml:"subject,omitempty"`
	Body    string   `json:"body,omitempty" yaml:"body,omitempty"`
}

// HasMinimumData requires at least one of to, subject, or body.
func (e EmailData) HasMinimumData() bool {
	return len(e.To) > 0 || e.Subject != "" || e.Body != ""
}

// EventData is the structured form of a calendar-event note.
type EventData struct {
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Date      string `json:"date,omitempty" yaml:"date,omitempty"`
	StartTime string `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	Location  string `json:"location,omitempty" yaml:"location,omitempty"`
	Notes     string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// HasMinimumData requires a title or a date.
func (e EventData) HasMinimumData() bool {
	return e.Title != "" || e.Date != ""
}

// ExpenseData is the structured form of a receipt or expense note.
// Amount is a pointer so that an absent amount is distinguishable from zero.
type ExpenseData struct {
	Merchant      string   `json:"merchant,omitempty" yaml:"merchant,omitempty"`
	Amount        *float64 `json:"amount,omitempty" yaml:"amount,omitempty"`
	Currency      string   `json:"currency,omitempty" yaml:"currency,omitempty"`
	Category      string   `json:"category,omitempty" yaml:"category,omitempty"`
	PaymentMethod string   `json:"payment_method,omitempty" yaml:"payment_method,omitempty"`
	Date          string   `json:"date,omitempty" yaml:"date,omitempty"`
}

// HasMinimumData requires a merchant or an amount.
func (e ExpenseData) HasMinimumData() bool {
	return e.Merchant != "" || e.Amount != nil
}

// RecipeData is the structured form of a recipe note.
type RecipeData struct {
	Title       string   `json:"title,omitempty" yaml:"title,omitempty"`
	Ingredients []string `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`
	Steps       []string `json:"steps,omitempty" yaml:"steps,omitempty"`
	Servings    string   `json:"servings,omitempty" yaml:"servings,omitempty"`
	PrepTime    string   `json:"prep_time,omitempty" yaml:"prep_time,omitempty"`
	CookTime    string   `json:"cook_time,omitempty" yaml:"cook_time,omitempty"`
}

// HasMinimumData requires at least one ingredient or one step.
func (r RecipeData) HasMinimumData() bool {
	return len(r.Ingredients) > 0 || len(r.Steps) > 0
}

// TodoItem is a single entry in a task list.
type TodoItem struct {
	Text     string `json:"text" yaml:"text"`
	Done     bool   `json:"done,omitempty" yaml:"done,omitempty"`
	Priority string `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// TodoData is the structured form of a task-list note.
type TodoData struct {
	Title string     `json:"title,omitempty" yaml:"title,omitempty"`
	Items []TodoItem `json:"items,omitempty" yaml:"items,omitempty"`
}

// HasMinimumData requires at least one item.
func (t TodoData) HasMinimumData() bool {
	return len(t.Items) > 0
}

// ContactData is the structured form of a contact-card note.
type ContactData struct {
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	Phone        string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email        string `json:"email,omitempty" yaml:"email,omitempty"`
	Organization string `json:"organization,omitempty" yaml:"organization,omitempty"`
	Address      string `json:"address,omitempty" yaml:"address,omitempty"`
}

// HasMinimumData requires a name, phone, or email address.
func (c ContactData) HasMinimumData() bool {
	return c.Name != "" || c.Phone != "" || c.Email != ""
}

// MeetingData is the structured form of meeting notes.
type MeetingData struct {
	Title       string   `json:"title,omitempty" yaml:"title,omitempty"`
	Date        string   `json:"date,omitempty" yaml:"date,omitempty"`
	Attendees   []string `json:"attendees,omitempty" yaml:"attendees,omitempty"`
	ActionItems []string `json:"action_items,omitempty" yaml:"action_items,omitempty"`
	Decisions   []string `json:"decisions,omitempty" yaml:"decisions,omitempty"`
	Summary     string   `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// HasMinimumData requires a title, an attendee, or an action item.
func (m MeetingData) HasMinimumData() bool {
	return m.Title != "" || len(m.Attendees) > 0 || len(m.ActionItems) > 0
}
