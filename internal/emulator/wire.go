// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package emulator

// Request and response documents as they appear on the wire.

type s3ConfigDoc struct {
	BucketName string `json:"bucketName"`
	KeyPrefix  string `json:"keyPrefix,omitempty"`
}

type cloudWatchConfigDoc struct {
	LogGroupName              string       `json:"logGroupName"`
	RoleArn                   string       `json:"roleArn"`
	LargeDataDeliveryS3Config *s3ConfigDoc `json:"largeDataDeliveryS3Config,omitempty"`
}

type loggingConfigDoc struct {
	CloudWatchConfig             *cloudWatchConfigDoc `json:"cloudWatchConfig,omitempty"`
	S3Config                     *s3ConfigDoc         `json:"s3Config,omitempty"`
	TextDataDeliveryEnabled      *bool                `json:"textDataDeliveryEnabled,omitempty"`
	ImageDataDeliveryEnabled     *bool                `json:"imageDataDeliveryEnabled,omitempty"`
	EmbeddingDataDeliveryEnabled *bool                `json:"embeddingDataDeliveryEnabled,omitempty"`
}

// textEnabled follows the platform default of delivering text when the flag is absent.
func (d loggingConfigDoc) textEnabled() bool {
	return d.TextDataDeliveryEnabled == nil || *d.TextDataDeliveryEnabled
}

type loggingConfigEnvelope struct {
	LoggingConfig *loggingConfigDoc `json:"loggingConfig,omitempty"`
}

type createLogGroupRequest struct {
	LogGroupName string `json:"logGroupName"`
}

type putRetentionPolicyRequest struct {
	LogGroupName    string `json:"logGroupName"`
	RetentionInDays int32  `json:"retentionInDays"`
}

type describeLogGroupsRequest struct {
	LogGroupNamePrefix string `json:"logGroupNamePrefix"`
}

type logGroupDoc struct {
	LogGroupName    string `json:"logGroupName"`
	Arn             string `json:"arn"`
	CreationTime    int64  `json:"creationTime"`
	RetentionInDays int32  `json:"retentionInDays,omitempty"`
	StoredBytes     int64  `json:"storedBytes"`
}

type describeLogGroupsResponse struct {
	LogGroups []logGroupDoc `json:"logGroups"`
}

type filterLogEventsRequest struct {
	LogGroupName  string `json:"logGroupName"`
	StartTime     int64  `json:"startTime"`
	EndTime       int64  `json:"endTime"`
	FilterPattern string `json:"filterPattern"`
	NextToken     string `json:"nextToken"`
	Limit         int    `json:"limit"`
}

type filteredLogEventDoc struct {
	LogStreamName string `json:"logStreamName"`
	Timestamp     int64  `json:"timestamp"`
	Message       string `json:"message"`
	IngestionTime int64  `json:"ingestionTime"`
	EventID       string `json:"eventId"`
}

type filterLogEventsResponse struct {
	Events             []filteredLogEventDoc `json:"events"`
	SearchedLogStreams []interface{}         `json:"searchedLogStreams"`
	NextToken          string                `json:"nextToken,omitempty"`
}

type errorResponse struct {
	Type    string `json:"__type"`
	Message string `json:"message"`
}
