package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// dynamoItem is the table row shape; "key" is the partition key.
type dynamoItem struct {
	Key   string `dynamodbav:"key"`
	Value string `dynamodbav:"value"`
}

// Dynamo stores blobs in a DynamoDB table keyed by "key" (string).
type Dynamo struct {
	Client *dynamodb.Client
	Table  string
}

// OpenDynamo loads the default AWS config for region.
func OpenDynamo(ctx context.Context, region, table string) (*Dynamo, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}
	return &Dynamo{Client: dynamodb.NewFromConfig(cfg), Table: table}, nil
}

func (d *Dynamo) Get(ctx context.Context, key string) (string, bool, error) {
	out, err := d.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(d.Table),
		Key:            map[string]types.AttributeValue{"key": &types.AttributeValueMemberS{Value: key}},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to get item %s: %w", key, err)
	}
	if out.Item == nil {
		return "", false, nil
	}

	var item dynamoItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return "", false, fmt.Errorf("failed to unmarshal item %s: %w", key, err)
	}
	return item.Value, true, nil
}

func (d *Dynamo) Set(ctx context.Context, key, value string) error {
	av, err := attributevalue.MarshalMap(dynamoItem{Key: key, Value: value})
	if err != nil {
		return fmt.Errorf("failed to marshal item %s: %w", key, err)
	}
	_, err = d.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.Table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put item %s: %w", key, err)
	}
	return nil
}

func (d *Dynamo) Clear(ctx context.Context, prefix string) error {
	paginator := dynamodb.NewScanPaginator(d.Client, &dynamodb.ScanInput{
		TableName:                aws.String(d.Table),
		FilterExpression:         aws.String("begins_with(#k, :prefix)"),
		ProjectionExpression:     aws.String("#k"),
		ExpressionAttributeNames: map[string]string{"#k": "key"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":prefix": &types.AttributeValueMemberS{Value: prefix},
		},
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", d.Table, err)
		}
		for _, item := range page.Items {
			_, err := d.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
				TableName: aws.String(d.Table),
				Key:       map[string]types.AttributeValue{"key": item["key"]},
			})
			if err != nil {
				return fmt.Errorf("failed to delete item: %w", err)
			}
		}
	}
	return nil
}
