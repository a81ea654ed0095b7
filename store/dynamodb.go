package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"
)

const (
	DefaultTable = "numbers"

	// PartitionKey and SortKey name the table's primary key. Order
	// restarts at 1 every run, so the sort key carries the run as well.
	PartitionKey = "Publisher"
	SortKey      = "RunOrder"
)

type DynamoDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

var _ DynamoDBClient = (*dynamodb.Client)(nil)

// DynamoDBStore keeps messages in a table keyed by Publisher (partition)
// and RunOrder (sort).
type DynamoDBStore struct {
	client DynamoDBClient
	table  string
}

// NewDynamoDBStore uses the default AWS config. An empty table means
// DefaultTable.
func NewDynamoDBStore(table string) (*DynamoDBStore, error) {
	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS config")
	}
	return NewDynamoDBStoreWithClient(dynamodb.NewFromConfig(cfg), table), nil
}

func NewDynamoDBStoreWithClient(client DynamoDBClient, table string) *DynamoDBStore {
	if table == "" {
		table = DefaultTable
	}
	return &DynamoDBStore{client: client, table: table}
}

func (s *DynamoDBStore) Save(m []Message) error {
	ctx := context.Background()
	for _, msg := range m {
		command := &dynamodb.PutItemInput{
			TableName: aws.String(s.table),
			Item: map[string]types.AttributeValue{
				PartitionKey: &types.AttributeValueMemberS{Value: msg.Publisher},
				SortKey:      &types.AttributeValueMemberS{Value: RunOrder(msg.Run, msg.Order)},
				"Run":        &types.AttributeValueMemberS{Value: msg.Run},
				"Order":      &types.AttributeValueMemberN{Value: fmt.Sprint(msg.Order)},
				"Content":    &types.AttributeValueMemberS{Value: msg.Content},
			},
		}
		if _, err := s.client.PutItem(ctx, command); err != nil {
			return errors.Wrapf(err, "failed to put message %d", msg.Order)
		}
	}
	return nil
}

func (s *DynamoDBStore) Messages(publisher string) ([]Message, error) {
	ctx := context.Background()
	results := &dynamodb.QueryOutput{}
	paginator := dynamodb.NewQueryPaginator(s.client, Query(s.table, publisher))
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to query messages")
		}
		results.Items = append(results.Items, page.Items...)
	}
	return ParseQueryResults(results)
}

// RunOrder is the sort key value of a message.
func RunOrder(run string, order int) string {
	return fmt.Sprintf("%s#%010d", run, order)
}

func Query(table, publisher string) *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		TableName:              aws.String(table),
		KeyConditionExpression: aws.String("Publisher = :publisher"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":publisher": &types.AttributeValueMemberS{Value: publisher},
		},
	}
}

func ParseQueryResults(query *dynamodb.QueryOutput) ([]Message, error) {
	var messages []Message
	for _, item := range query.Items {
		order, ok := item["Order"].(*types.AttributeValueMemberN)
		if !ok {
			return nil, errors.New("item has no numeric Order")
		}
		n, err := strconv.Atoi(order.Value)
		if err != nil {
			return nil, errors.Wrap(err, "invalid Order")
		}
		messages = append(messages, Message{
			Publisher: stringAttr(item, "Publisher"),
			Run:       stringAttr(item, "Run"),
			Order:     n,
			Content:   stringAttr(item, "Content"),
		})
	}
	sortByOrder(messages)
	return messages, nil
}

func stringAttr(item map[string]types.AttributeValue, key string) string {
	if v, ok := item[key].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}
