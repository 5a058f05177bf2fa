// Package metrics publishes application counters to CloudWatch.
// file: metrics/metrics.go
package metrics

import (
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"
	"github.com/aws/aws-sdk-go/service/cloudwatch/cloudwatchiface"
	"techevents-web/logger"
)

// metric names
const (
	EventLoadFailed    = "EventLoadFailed"
	EventNotFound      = "EventNotFound"
	EventCreated       = "EventCreated"
	EventCreateFailed  = "EventCreateFailed"
	PlaceholderImage   = "PlaceholderImageGenerated"
	ProfileUpdated     = "ProfileUpdated"
	ProfileUpdateError = "ProfileUpdateFailed"
	SessionExpired     = "SessionExpired"
	Registration       = "RegistrationSubmitted"
	RegistrationClosed = "RegistrationRejectedClosed"
)

// Publisher records a single occurrence of a metric, tagged with a page name.
type Publisher interface {
	Count(metric, page string)
}

// Nop discards every metric.
type Nop struct{}

// Count implements Publisher.
func (Nop) Count(string, string) {}

// CloudWatchPublisher pushes counters with the AWS SDK.
type CloudWatchPublisher struct {
	client    cloudwatchiface.CloudWatchAPI
	namespace string
}

// NewCloudWatchPublisher builds a publisher for region, reusing one client for
// every call.
func NewCloudWatchPublisher(region, namespace string) (*CloudWatchPublisher, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, err
	}
	return NewCloudWatchPublisherWithClient(cloudwatch.New(sess), namespace), nil
}

// NewCloudWatchPublisherWithClient wraps an existing client.
func NewCloudWatchPublisherWithClient(client cloudwatchiface.CloudWatchAPI, namespace string) *CloudWatchPublisher {
	return &CloudWatchPublisher{client: client, namespace: namespace}
}

// Count implements Publisher. Failures are logged and never surface to pages.
func (p *CloudWatchPublisher) Count(metric, page string) {
	_, err := p.client.PutMetricData(&cloudwatch.PutMetricDataInput{
		Namespace: aws.String(p.namespace),
		MetricData: []*cloudwatch.MetricDatum{
			{
				MetricName: aws.String(metric),
				Dimensions: []*cloudwatch.Dimension{
					{
						Name:  aws.String("Page"),
						Value: aws.String(page),
					},
				},
				Timestamp: aws.Time(time.Now()),
				Value:     aws.Float64(1),
				Unit:      aws.String(cloudwatch.StandardUnitCount),
			},
		},
	})
	if err != nil {
		logger.Error.Printf("[CloudWatchPublisher] metric %s failed: %v", metric, err)
	}
}
