package notify

import "context"

type Email struct {
	To      []string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, in Email) (messageID string, err error)
}

type Trigger struct {
	Workflow     string
	SubscriberID string
	Payload      map[string]any
}

type TriggerResult struct {
	Acknowledged  bool
	TransactionID string
}

type Pusher interface {
	Trigger(ctx context.Context, in Trigger) (TriggerResult, error)
}
