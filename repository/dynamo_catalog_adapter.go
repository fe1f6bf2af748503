package repository

import (
	"context"
	"fmt"
	"time"

	"variant-export-service/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the subset of the DynamoDB client used by the catalog adapter.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	dynamodb.ScanAPIClient
}

// DynamoCatalogAdapter reads products and variations from a single table keyed
// by `post_id` (number). Products and variations share the table and are told
// apart by `post_type`.
type DynamoCatalogAdapter struct {
	client DynamoAPI
	table  string
}

func NewDynamoCatalogAdapter(client DynamoAPI, table string) *DynamoCatalogAdapter {
	return &DynamoCatalogAdapter{client: client, table: table}
}

const (
	postTypeProduct   = "product"
	postTypeVariation = "product_variation"
)

type ddbCatalogItem struct {
	PostID           int64             `dynamodbav:"post_id"`
	PostType         string            `dynamodbav:"post_type"`
	ParentID         int64             `dynamodbav:"parent_id,omitempty"`
	Name             string            `dynamodbav:"name,omitempty"`
	SKU              string            `dynamodbav:"sku,omitempty"`
	ProductType      string            `dynamodbav:"product_type,omitempty"`
	Status           string            `dynamodbav:"status,omitempty"`
	VariationIDs     []int64           `dynamodbav:"variation_ids,omitempty"`
	ImageKey         string            `dynamodbav:"image_key,omitempty"`
	ShortDescription string            `dynamodbav:"short_description,omitempty"`
	Description      string            `dynamodbav:"description,omitempty"`
	Categories       []string          `dynamodbav:"categories,omitempty"`
	Tags             []string          `dynamodbav:"tags,omitempty"`
	Attributes       map[string]string `dynamodbav:"attributes,omitempty"`
	CreatedAt        string            `dynamodbav:"created_at,omitempty"`
}

func (it *ddbCatalogItem) toProduct() *models.Product {
	p := &models.Product{
		ID:               it.PostID,
		Name:             it.Name,
		SKU:              it.SKU,
		Type:             it.ProductType,
		Status:           it.Status,
		VariationIDs:     it.VariationIDs,
		ImageKey:         it.ImageKey,
		ShortDescription: it.ShortDescription,
		Description:      it.Description,
		Categories:       it.Categories,
		Tags:             it.Tags,
	}
	if t, err := time.Parse(time.RFC3339, it.CreatedAt); err == nil {
		p.CreatedAt = t
	}
	return p
}

func (it *ddbCatalogItem) toVariant() *models.Variant {
	return &models.Variant{
		ID:         it.PostID,
		ParentID:   it.ParentID,
		Attributes: it.Attributes,
		ImageKey:   it.ImageKey,
		SKU:        it.SKU,
	}
}

func (d *DynamoCatalogAdapter) getItem(ctx context.Context, id int64) (*ddbCatalogItem, error) {
	key, err := attributevalue.MarshalMap(map[string]int64{"post_id": id})
	if err != nil {
		return nil, fmt.Errorf("marshal key: %w", err)
	}
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{TableName: &d.table, Key: key})
	if err != nil {
		return nil, fmt.Errorf("dynamodb GetItem failed: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}
	var it ddbCatalogItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	return &it, nil
}

func (d *DynamoCatalogAdapter) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	it, err := d.getItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if it.PostType != postTypeProduct {
		return nil, ErrNotFound
	}
	return it.toProduct(), nil
}

func (d *DynamoCatalogAdapter) GetVariant(ctx context.Context, id int64) (*models.Variant, error) {
	it, err := d.getItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if it.PostType != postTypeVariation {
		return nil, ErrNotFound
	}
	return it.toVariant(), nil
}

// ListProducts scans the table for product items. Variations are filtered
// server-side.
func (d *DynamoCatalogAdapter) ListProducts(ctx context.Context) ([]*models.Product, error) {
	input := &dynamodb.ScanInput{
		TableName:        &d.table,
		FilterExpression: stringPtr("post_type = :pt"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pt": &types.AttributeValueMemberS{Value: postTypeProduct},
		},
	}
	var results []*models.Product
	paginator := dynamodb.NewScanPaginator(d.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan page failed: %w", err)
		}
		for _, item := range page.Items {
			var it ddbCatalogItem
			if err := attributevalue.UnmarshalMap(item, &it); err != nil {
				return nil, fmt.Errorf("unmarshal item: %w", err)
			}
			results = append(results, it.toProduct())
		}
	}
	return results, nil
}

// PutProduct writes a product item. Used by the catalog seeding tool.
func (d *DynamoCatalogAdapter) PutProduct(ctx context.Context, p *models.Product) error {
	it := ddbCatalogItem{
		PostID:           p.ID,
		PostType:         postTypeProduct,
		Name:             p.Name,
		SKU:              p.SKU,
		ProductType:      p.Type,
		Status:           p.Status,
		VariationIDs:     p.VariationIDs,
		ImageKey:         p.ImageKey,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		Categories:       p.Categories,
		Tags:             p.Tags,
	}
	if !p.CreatedAt.IsZero() {
		it.CreatedAt = p.CreatedAt.UTC().Format(time.RFC3339)
	}
	return d.put(ctx, it)
}

// PutVariant writes a variation item. Used by the catalog seeding tool.
func (d *DynamoCatalogAdapter) PutVariant(ctx context.Context, v *models.Variant) error {
	return d.put(ctx, ddbCatalogItem{
		PostID:     v.ID,
		PostType:   postTypeVariation,
		ParentID:   v.ParentID,
		Attributes: v.Attributes,
		ImageKey:   v.ImageKey,
		SKU:        v.SKU,
	})
}

func (d *DynamoCatalogAdapter) put(ctx context.Context, it ddbCatalogItem) error {
	item, err := attributevalue.MarshalMap(it)
	if err != nil {
		return fmt.Errorf("marshal catalog item: %w", err)
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{TableName: &d.table, Item: item})
	if err != nil {
		return fmt.Errorf("dynamodb PutItem failed: %w", err)
	}
	return nil
}

func stringPtr(s string) *string { return &s }
