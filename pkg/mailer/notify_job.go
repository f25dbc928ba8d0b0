package mailer

// NotifyJob is the JSON payload put on the RabbitMQ queue for activity
// notification emails (new vote or comment on a product).
type NotifyJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}
