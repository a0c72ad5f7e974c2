// Package store provides single-table DynamoDB access for the records service.
//
// All record kinds share one table, partitioned by a synthetic id and
// discriminated by an "entity" attribute. A GSI keyed on (entity, createdAt)
// serves ordered per-kind listings. Unique field constraints (customer email,
// product SKU) are backed by shadow constraint records written in the same
// transaction as the record itself, so a concurrent duplicate fails the
// conditional put instead of writing a second record.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/storefront/internal/constraintkey"
)

// DynamoAPI is the subset of the DynamoDB client used by the Store.
// Satisfied by *dynamodb.Client and by test doubles.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Record is the base interface for all storable types.
type Record interface {
	// RecordID returns the record's primary key value.
	RecordID() string

	// EntityType returns the entity discriminator (e.g. "CUSTOMER").
	EntityType() string
}

// UniqueFielder is implemented by records with unique field constraints.
type UniqueFielder interface {
	// UniqueFields returns field name to normalized value mappings for
	// fields that must be unique across the entity population.
	UniqueFields() map[string]string
}

// PK represents a DynamoDB primary key.
type PK map[string]types.AttributeValue

// FieldChange is one attribute assignment (or removal) in a partial update.
type FieldChange struct {
	Name   string
	Value  types.AttributeValue
	Remove bool
}

// UniqueSwap describes a unique field changing value during an update.
// The old constraint record is deleted and the new one created in the
// same transaction as the record update.
type UniqueSwap struct {
	Field string
	Old   string
	New   string
}

// Query defines parameters for an ordered per-entity index read.
type Query struct {
	// Entity restricts the query to one record kind.
	Entity string

	// FilterField/FilterValue apply a server-side equality filter.
	FilterField string
	FilterValue string

	// ExcludeID filters out the record with this primary key.
	ExcludeID string

	// Limit caps the number of items evaluated (0 = no limit).
	Limit int32

	// StartKey resumes a paginated query.
	StartKey map[string]types.AttributeValue

	// Descending orders results newest-first when true.
	Descending bool
}

// Page is one page of query results.
type Page struct {
	Items   []map[string]types.AttributeValue
	LastKey map[string]types.AttributeValue
}

// Store provides DynamoDB operations over the shared records table.
type Store struct {
	client DynamoAPI
	config Config
}

// New creates a new Store instance.
func New(client DynamoAPI, config Config) *Store {
	config.validate()
	return &Store{
		client: client,
		config: config,
	}
}

// key builds the table primary key for a record id.
func (s *Store) key(id string) PK {
	return PK{
		s.config.PrimaryKey: &types.AttributeValueMemberS{Value: id},
	}
}

// Get retrieves a record by primary key, returning ErrNotFound if missing.
func (s *Store) Get(ctx context.Context, id string) (map[string]types.AttributeValue, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.config.Table),
		Key:       s.key(id),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}
	return result.Item, nil
}

// PutRecord writes a new record. If the record carries unique field
// constraints, the record and its constraint records are written in a
// single transaction conditioned on absence of both.
func (s *Store) PutRecord(ctx context.Context, rec Record) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", rec.EntityType(), err)
	}

	uniques := uniqueFieldsOf(rec)
	if len(uniques) == 0 {
		_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:                aws.String(s.config.Table),
			Item:                     item,
			ConditionExpression:      aws.String("attribute_not_exists(#pk)"),
			ExpressionAttributeNames: map[string]string{"#pk": s.config.PrimaryKey},
		})
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrAlreadyExists
		}
		return err
	}

	items := []types.TransactWriteItem{}
	for field, value := range uniques {
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(s.config.Table),
				Item:                s.constraintItem(rec, field, value),
				ConditionExpression: aws.String("attribute_not_exists(#pk)"),
				ExpressionAttributeNames: map[string]string{
					"#pk": s.config.PrimaryKey,
				},
			},
		})
	}

	recordPutIndex := len(items)
	items = append(items, types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(s.config.Table),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(#pk)"),
			ExpressionAttributeNames: map[string]string{
				"#pk": s.config.PrimaryKey,
			},
		},
	})

	_, err = s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	return mapTransactionError(err, recordPutIndex, ErrAlreadyExists)
}

// UpdateRecord applies a partial update and returns the post-update item.
// Swaps move unique constraint records to new values transactionally;
// a conflicting new value fails the whole update with ErrDuplicateValue.
func (s *Store) UpdateRecord(ctx context.Context, rec Record, changes []FieldChange, swaps []UniqueSwap) (map[string]types.AttributeValue, error) {
	if len(changes) == 0 {
		return nil, errors.New("storefront: update with no field changes")
	}

	updateExpr, exprNames, exprValues := buildUpdateExpression(changes)
	exprNames["#pk"] = s.config.PrimaryKey
	if len(exprValues) == 0 {
		// DynamoDB rejects an empty ExpressionAttributeValues map.
		exprValues = nil
	}

	if len(swaps) == 0 {
		result, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName:                 aws.String(s.config.Table),
			Key:                       s.key(rec.RecordID()),
			UpdateExpression:          aws.String(updateExpr),
			ConditionExpression:       aws.String("attribute_exists(#pk)"),
			ExpressionAttributeNames:  exprNames,
			ExpressionAttributeValues: exprValues,
			ReturnValues:              types.ReturnValueAllNew,
		})
		if err != nil {
			var condErr *types.ConditionalCheckFailedException
			if errors.As(err, &condErr) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return result.Attributes, nil
	}

	items := []types.TransactWriteItem{}
	for _, swap := range swaps {
		if swap.Old != "" {
			items = append(items, types.TransactWriteItem{
				Delete: &types.Delete{
					TableName: aws.String(s.config.Table),
					Key:       s.key(constraintkey.ForField(rec.EntityType(), swap.Field, swap.Old)),
				},
			})
		}
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(s.config.Table),
				Item:                s.constraintItem(rec, swap.Field, swap.New),
				ConditionExpression: aws.String("attribute_not_exists(#pk)"),
				ExpressionAttributeNames: map[string]string{
					"#pk": s.config.PrimaryKey,
				},
			},
		})
	}

	recordUpdateIndex := len(items)
	items = append(items, types.TransactWriteItem{
		Update: &types.Update{
			TableName:                 aws.String(s.config.Table),
			Key:                       s.key(rec.RecordID()),
			UpdateExpression:          aws.String(updateExpr),
			ConditionExpression:       aws.String("attribute_exists(#pk)"),
			ExpressionAttributeNames:  exprNames,
			ExpressionAttributeValues: exprValues,
		},
	})

	_, err := s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err := mapTransactionError(err, recordUpdateIndex, ErrNotFound); err != nil {
		return nil, err
	}

	// TransactWriteItems cannot return values; fetch the post-update image.
	return s.Get(ctx, rec.RecordID())
}

// DeleteRecord hard-deletes a record and any constraint records it owns.
// Returns ErrNotFound when nothing was deleted.
func (s *Store) DeleteRecord(ctx context.Context, rec Record) error {
	uniques := uniqueFieldsOf(rec)
	if len(uniques) == 0 {
		result, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName:    aws.String(s.config.Table),
			Key:          s.key(rec.RecordID()),
			ReturnValues: types.ReturnValueAllOld,
		})
		if err != nil {
			return err
		}
		if result.Attributes == nil {
			return ErrNotFound
		}
		return nil
	}

	items := []types.TransactWriteItem{
		{
			Delete: &types.Delete{
				TableName:           aws.String(s.config.Table),
				Key:                 s.key(rec.RecordID()),
				ConditionExpression: aws.String("attribute_exists(#pk)"),
				ExpressionAttributeNames: map[string]string{
					"#pk": s.config.PrimaryKey,
				},
			},
		},
	}
	for field, value := range uniques {
		items = append(items, types.TransactWriteItem{
			Delete: &types.Delete{
				TableName: aws.String(s.config.Table),
				Key:       s.key(constraintkey.ForField(rec.EntityType(), field, value)),
			},
		})
	}

	_, err := s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	return mapTransactionError(err, 0, ErrNotFound)
}

// QueryByEntity reads one page of the (entity, createdAt) index.
func (s *Store) QueryByEntity(ctx context.Context, q Query) (*Page, error) {
	exprNames := map[string]string{"#entity": "entity"}
	exprValues := map[string]types.AttributeValue{
		":entity": &types.AttributeValueMemberS{Value: q.Entity},
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.config.Table),
		IndexName:              aws.String(s.config.Index),
		KeyConditionExpression: aws.String("#entity = :entity"),
	}

	var filterExpr string
	if q.FilterField != "" {
		exprNames["#f"] = q.FilterField
		exprValues[":fv"] = &types.AttributeValueMemberS{Value: q.FilterValue}
		filterExpr = "#f = :fv"
	}
	if q.ExcludeID != "" {
		exprNames["#pk"] = s.config.PrimaryKey
		exprValues[":exclude"] = &types.AttributeValueMemberS{Value: q.ExcludeID}
		if filterExpr != "" {
			filterExpr += " AND "
		}
		filterExpr += "#pk <> :exclude"
	}
	if filterExpr != "" {
		input.FilterExpression = aws.String(filterExpr)
	}

	input.ExpressionAttributeNames = exprNames
	input.ExpressionAttributeValues = exprValues

	if q.Limit > 0 {
		input.Limit = aws.Int32(q.Limit)
	}
	if q.StartKey != nil {
		input.ExclusiveStartKey = q.StartKey
	}
	if q.Descending {
		input.ScanIndexForward = aws.Bool(false)
	}

	result, err := s.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Entity, err)
	}

	return &Page{
		Items:   result.Items,
		LastKey: result.LastEvaluatedKey,
	}, nil
}

// constraintItem builds the shadow record backing one unique field value.
// Constraint records carry no entity attribute, keeping them out of the
// (entity, createdAt) index.
func (s *Store) constraintItem(rec Record, field, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		s.config.PrimaryKey: &types.AttributeValueMemberS{
			Value: constraintkey.ForField(rec.EntityType(), field, value),
		},
		"recordId":   &types.AttributeValueMemberS{Value: rec.RecordID()},
		"entityType": &types.AttributeValueMemberS{Value: rec.EntityType()},
		"fieldName":  &types.AttributeValueMemberS{Value: field},
		"fieldValue": &types.AttributeValueMemberS{Value: value},
	}
}

// uniqueFieldsOf returns the record's unique fields, dropping empty values.
func uniqueFieldsOf(rec Record) map[string]string {
	uf, ok := rec.(UniqueFielder)
	if !ok {
		return nil
	}
	fields := map[string]string{}
	for field, value := range uf.UniqueFields() {
		if value != "" {
			fields[field] = value
		}
	}
	return fields
}

// buildUpdateExpression lowers field changes to a SET/REMOVE expression.
func buildUpdateExpression(changes []FieldChange) (string, map[string]string, map[string]types.AttributeValue) {
	var setClauses, removeClauses []string
	exprNames := map[string]string{}
	exprValues := map[string]types.AttributeValue{}

	for i, change := range changes {
		nameKey := fmt.Sprintf("#attr%d", i)
		exprNames[nameKey] = change.Name
		if change.Remove {
			removeClauses = append(removeClauses, nameKey)
			continue
		}
		valueKey := fmt.Sprintf(":val%d", i)
		exprValues[valueKey] = change.Value
		setClauses = append(setClauses, fmt.Sprintf("%s = %s", nameKey, valueKey))
	}

	expr := ""
	if len(setClauses) > 0 {
		expr = "SET " + joinStrings(setClauses, ", ")
	}
	if len(removeClauses) > 0 {
		if expr != "" {
			expr += " "
		}
		expr += "REMOVE " + joinStrings(removeClauses, ", ")
	}
	return expr, exprNames, exprValues
}

// mapTransactionError maps cancellation reasons back to domain errors.
// recordIndex is the transaction item writing the record itself; a
// condition failure there yields recordErr, anywhere else it means a
// constraint record already existed.
func mapTransactionError(err error, recordIndex int, recordErr error) error {
	if err == nil {
		return nil
	}

	var txErr *types.TransactionCanceledException
	if errors.As(err, &txErr) {
		for i, reason := range txErr.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				if i == recordIndex {
					return recordErr
				}
				return ErrDuplicateValue
			}
		}
	}

	return err
}

// joinStrings joins strings with a separator (avoiding strings package import).
func joinStrings(strs []string, sep string) string {
	if len(strs) == 0 {
		return ""
	}
	result := strs[0]
	for _, s := range strs[1:] {
		result += sep + s
	}
	return result
}
