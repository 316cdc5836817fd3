package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	dynamoPartitionPrefix = "LEAGUE#"
	dynamoSortKey         = "STATE"
)

// DynamoAPI is the part of the DynamoDB client the store uses.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoStore keeps each blob as one item in a PK/SK table.
type DynamoStore struct {
	client DynamoAPI
	table  string
}

func NewDynamoStore(ctx context.Context, table string) (*DynamoStore, error) {
	if strings.TrimSpace(table) == "" {
		return nil, errors.New("dynamodb table is required")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewDynamoStoreWithClient(dynamodb.NewFromConfig(cfg), table), nil
}

func NewDynamoStoreWithClient(client DynamoAPI, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

func (s *DynamoStore) itemKey(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: dynamoPartitionPrefix + key},
		"SK": &types.AttributeValueMemberS{Value: dynamoSortKey},
	}
}

func (s *DynamoStore) Load(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            s.itemKey(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}
	payload, ok := out.Item["Payload"].(*types.AttributeValueMemberS)
	if !ok {
		return nil, fmt.Errorf("load %s: payload attribute missing", key)
	}
	return []byte(payload.Value), nil
}

func (s *DynamoStore) Save(ctx context.Context, key string, blob []byte) error {
	item := s.itemKey(key)
	item["Payload"] = &types.AttributeValueMemberS{Value: string(blob)}
	item["UpdatedAt"] = &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)}

	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *DynamoStore) Close() error {
	return nil
}
