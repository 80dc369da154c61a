// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package destination

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	log "github.com/sirupsen/logrus"

	"github.com/aws/bedrock-invocation-logging/internal/awserr"
	"github.com/aws/bedrock-invocation-logging/internal/model"
)

// LogsAPI is the subset of the CloudWatch Logs client used to provision log groups.
type LogsAPI interface {
	CreateLogGroup(ctx context.Context, params *cloudwatchlogs.CreateLogGroupInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogGroupOutput, error)
	PutRetentionPolicy(ctx context.Context, params *cloudwatchlogs.PutRetentionPolicyInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutRetentionPolicyOutput, error)
}

type Manager struct {
	client LogsAPI

	// RetentionDays is applied after Ensure when positive.
	RetentionDays int32
}

func NewManager(client LogsAPI) *Manager {
	return &Manager{client: client}
}

// Ensure creates the log group, or accepts it as-is when it already exists.
func (m *Manager) Ensure(ctx context.Context, name string) (model.LogDestinationRef, error) {
	if name == "" {
		return model.LogDestinationRef{}, model.NewAppError(model.ErrorMissingConfiguration,
			model.WithOperation("CreateLogGroup"), model.WithErrorMessage("log group name is empty"))
	}

	ref := model.LogDestinationRef{Name: name, Created: true}

	_, err := m.client.CreateLogGroup(ctx, &cloudwatchlogs.CreateLogGroupInput{LogGroupName: aws.String(name)})
	err = awserr.Classify("CreateLogGroup", err)
	switch {
	case err == nil:
		log.WithField("logGroup", name).Info("Log group created")
	case awserr.IsAlreadyExists(err):
		log.WithField("logGroup", name).Info("Log group already exists")
		ref.Created = false
	default:
		return model.LogDestinationRef{}, err
	}

	if m.RetentionDays > 0 {
		if _, err := m.client.PutRetentionPolicy(ctx, &cloudwatchlogs.PutRetentionPolicyInput{
			LogGroupName:    aws.String(name),
			RetentionInDays: aws.Int32(m.RetentionDays),
		}); err != nil {
			return model.LogDestinationRef{}, awserr.Classify("PutRetentionPolicy", err)
		}
		log.WithFields(log.Fields{"logGroup": name, "retentionDays": m.RetentionDays}).Debug("Retention policy set")
	}

	return ref, nil
}
