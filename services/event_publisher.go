package services

import (
	"context"
	"encoding/json"
	"fmt"

	awspkg "variant-export-service/pkg/aws"
)

// EventExportGenerated is the event_type attribute of export notifications.
const EventExportGenerated = "export.generated"

// SNSEventPublisher sends export events to an SNS topic.
type SNSEventPublisher struct {
	client   awspkg.SNSPublisher
	topicArn string
}

func NewSNSEventPublisher(client awspkg.SNSPublisher, topicArn string) *SNSEventPublisher {
	return &SNSEventPublisher{client: client, topicArn: topicArn}
}

func (p *SNSEventPublisher) PublishExportGenerated(ctx context.Context, evt ExportGeneratedEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", EventExportGenerated, err)
	}
	return p.client.Publish(ctx, p.topicArn, EventExportGenerated, payload)
}
