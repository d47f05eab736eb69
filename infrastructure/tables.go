package infrastructure

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"enquirydesk-backend/dal"
	"enquirydesk-backend/models"
	"enquirydesk-backend/utils/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/tidwall/gjson"
)

// TableSchema mirrors the JSON table definitions embedded below.
type TableSchema struct {
	TableName              string                 `json:"TableName"`
	AttributeDefinitions   []AttributeDefinition  `json:"AttributeDefinitions"`
	KeySchema              []KeySchemaElement     `json:"KeySchema"`
	ProvisionedThroughput  Throughput             `json:"ProvisionedThroughput"`
	GlobalSecondaryIndexes []GlobalSecondaryIndex `json:"GlobalSecondaryIndexes,omitempty"`
}

type AttributeDefinition struct {
	AttributeName string `json:"AttributeName"`
	AttributeType string `json:"AttributeType"`
}

type KeySchemaElement struct {
	AttributeName string `json:"AttributeName"`
	KeyType       string `json:"KeyType"`
}

type Throughput struct {
	ReadCapacityUnits  int64 `json:"ReadCapacityUnits"`
	WriteCapacityUnits int64 `json:"WriteCapacityUnits"`
}

type GlobalSecondaryIndex struct {
	IndexName             string             `json:"IndexName"`
	KeySchema             []KeySchemaElement `json:"KeySchema"`
	Projection            Projection         `json:"Projection"`
	ProvisionedThroughput Throughput         `json:"ProvisionedThroughput"`
}

type Projection struct {
	ProjectionType string `json:"ProjectionType"`
}

//go:embed table_schema.json
var tablesSchema []byte

// GetTables looks up the schema for a prefixed table name ("dev_enquiries"
// resolves the "enquiries" definition) and returns the CreateTableInput.
func GetTables(tableName string) (*dynamodb.CreateTableInput, error) {
	schemaKey := extractBaseTableName(tableName)

	tableJson := gjson.Get(string(tablesSchema), schemaKey)
	if !tableJson.Exists() {
		return nil, fmt.Errorf("table schema not found for key: %s", schemaKey)
	}

	var schema TableSchema
	if err := json.Unmarshal([]byte(tableJson.Raw), &schema); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema JSON: %w", err)
	}

	// The schema file holds base names; the deployment prefix wins.
	schema.TableName = tableName

	return schema.ToDynamoInput(), nil
}

// extractBaseTableName strips the environment prefix from a table name,
// e.g. "dev_enquiries" -> "enquiries".
func extractBaseTableName(tableName string) string {
	parts := strings.Split(tableName, "_")
	if len(parts) > 1 {
		return parts[len(parts)-1]
	}
	return tableName
}

// EnsureTables creates every configured table that does not already exist.
// Called once at boot; a table concurrently created by another instance is
// treated as success.
func EnsureTables(ctx context.Context, db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) error {
	for _, base := range cfg.Tables {
		tableName := cfg.DynamoDBTablePrefix + "_" + base

		if _, err := db.DescribeTable(ctx, tableName); err == nil {
			log.Debugf("Table %s already exists", tableName)
			continue
		}

		input, err := GetTables(tableName)
		if err != nil {
			return fmt.Errorf("failed to resolve schema for %s: %w", tableName, err)
		}

		log.Infof("Creating table %s", tableName)
		if err := db.CreateTable(ctx, input); err != nil {
			var apiErr smithy.APIError
			if errors.As(err, &apiErr) && apiErr.ErrorCode() == "ResourceInUseException" {
				log.Infof("Table %s is already being created", tableName)
				continue
			}
			return fmt.Errorf("failed to create table %s: %w", tableName, err)
		}
	}

	return nil
}

// ToDynamoInput converts the JSON schema into the SDK request type.
func (ts *TableSchema) ToDynamoInput() *dynamodb.CreateTableInput {
	attrDefs := make([]types.AttributeDefinition, 0, len(ts.AttributeDefinitions))
	for _, a := range ts.AttributeDefinitions {
		attrDefs = append(attrDefs, types.AttributeDefinition{
			AttributeName: aws.String(a.AttributeName),
			AttributeType: types.ScalarAttributeType(a.AttributeType),
		})
	}

	keySchema := make([]types.KeySchemaElement, 0, len(ts.KeySchema))
	for _, k := range ts.KeySchema {
		keySchema = append(keySchema, types.KeySchemaElement{
			AttributeName: aws.String(k.AttributeName),
			KeyType:       types.KeyType(k.KeyType),
		})
	}

	var gsis []types.GlobalSecondaryIndex
	for _, g := range ts.GlobalSecondaryIndexes {
		gsiKeySchema := make([]types.KeySchemaElement, 0, len(g.KeySchema))
		for _, k := range g.KeySchema {
			gsiKeySchema = append(gsiKeySchema, types.KeySchemaElement{
				AttributeName: aws.String(k.AttributeName),
				KeyType:       types.KeyType(k.KeyType),
			})
		}
		gsis = append(gsis, types.GlobalSecondaryIndex{
			IndexName: aws.String(g.IndexName),
			KeySchema: gsiKeySchema,
			Projection: &types.Projection{
				ProjectionType: types.ProjectionType(g.Projection.ProjectionType),
			},
			ProvisionedThroughput: &types.ProvisionedThroughput{
				ReadCapacityUnits:  aws.Int64(g.ProvisionedThroughput.ReadCapacityUnits),
				WriteCapacityUnits: aws.Int64(g.ProvisionedThroughput.WriteCapacityUnits),
			},
		})
	}

	return &dynamodb.CreateTableInput{
		TableName:            aws.String(ts.TableName),
		AttributeDefinitions: attrDefs,
		KeySchema:            keySchema,
		ProvisionedThroughput: &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(ts.ProvisionedThroughput.ReadCapacityUnits),
			WriteCapacityUnits: aws.Int64(ts.ProvisionedThroughput.WriteCapacityUnits),
		},
		GlobalSecondaryIndexes: gsis,
	}
}
