package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"variant-export-service/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo keeps items in memory keyed by post_id. Scan ignores the filter
// expression and pages two items at a time so the paginator is exercised.
type fakeDynamo struct {
	items    map[int64]map[string]types.AttributeValue
	order    []int64
	scanErr  error
	scanSeen int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: map[int64]map[string]types.AttributeValue{}}
}

func (f *fakeDynamo) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	var key struct {
		PostID int64 `dynamodbav:"post_id"`
	}
	if err := attributevalue.UnmarshalMap(in.Key, &key); err != nil {
		return nil, err
	}
	return &dynamodb.GetItemOutput{Item: f.items[key.PostID]}, nil
}

func (f *fakeDynamo) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	var key struct {
		PostID int64 `dynamodbav:"post_id"`
	}
	if err := attributevalue.UnmarshalMap(in.Item, &key); err != nil {
		return nil, err
	}
	if _, ok := f.items[key.PostID]; !ok {
		f.order = append(f.order, key.PostID)
	}
	f.items[key.PostID] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) Scan(ctx context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	f.scanSeen++
	start := 0
	if in.ExclusiveStartKey != nil {
		var key struct {
			PostID int64 `dynamodbav:"post_id"`
		}
		if err := attributevalue.UnmarshalMap(in.ExclusiveStartKey, &key); err != nil {
			return nil, err
		}
		for i, id := range f.order {
			if id == key.PostID {
				start = i + 1
			}
		}
	}
	end := start + 2
	if end > len(f.order) {
		end = len(f.order)
	}
	out := &dynamodb.ScanOutput{}
	for _, id := range f.order[start:end] {
		item := f.items[id]
		if pt, ok := item["post_type"].(*types.AttributeValueMemberS); ok && pt.Value == postTypeProduct {
			out.Items = append(out.Items, item)
		}
	}
	if end < len(f.order) {
		lastKey, _ := attributevalue.MarshalMap(map[string]int64{"post_id": f.order[end-1]})
		out.LastEvaluatedKey = lastKey
	}
	return out, nil
}

func seedCatalog(t *testing.T, repo *DynamoCatalogAdapter) {
	t.Helper()
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.PutProduct(ctx, &models.Product{
		ID: 10, Name: "Tee", SKU: "TEE", Type: models.ProductTypeVariable, Status: models.ProductStatusPublish,
		VariationIDs: []int64{11, 12}, ImageKey: "img/tee.jpg", ShortDescription: "<p>Soft</p>",
		Categories: []string{"Shirts"}, Tags: []string{"summer"}, CreatedAt: created,
	}))
	require.NoError(t, repo.PutVariant(ctx, &models.Variant{
		ID: 11, ParentID: 10, Attributes: map[string]string{"pa_szin": "Red"}, SKU: "TEE-R",
	}))
	require.NoError(t, repo.PutVariant(ctx, &models.Variant{ID: 12, ParentID: 10}))
	require.NoError(t, repo.PutProduct(ctx, &models.Product{ID: 20, Name: "Mug", Type: models.ProductTypeSimple}))
	require.NoError(t, repo.PutProduct(ctx, &models.Product{ID: 30, Name: "Cap", Type: models.ProductTypeVariable}))
}

func TestDynamoCatalogAdapter_GetProduct(t *testing.T) {
	repo := NewDynamoCatalogAdapter(newFakeDynamo(), "Catalog")
	seedCatalog(t, repo)

	p, err := repo.GetProduct(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "Tee", p.Name)
	assert.Equal(t, []int64{11, 12}, p.VariationIDs)
	assert.Equal(t, []string{"Shirts"}, p.Categories)
	assert.Equal(t, "img/tee.jpg", p.ImageKey)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), p.CreatedAt)
	assert.True(t, p.IsVariable())
}

func TestDynamoCatalogAdapter_KindMismatchIsNotFound(t *testing.T) {
	repo := NewDynamoCatalogAdapter(newFakeDynamo(), "Catalog")
	seedCatalog(t, repo)
	ctx := context.Background()

	_, err := repo.GetProduct(ctx, 11)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = repo.GetVariant(ctx, 10)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = repo.GetVariant(ctx, 999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDynamoCatalogAdapter_GetVariant(t *testing.T) {
	repo := NewDynamoCatalogAdapter(newFakeDynamo(), "Catalog")
	seedCatalog(t, repo)

	v, err := repo.GetVariant(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, int64(10), v.ParentID)
	assert.Equal(t, "Red", v.Attribute("pa_szin"))
	assert.Equal(t, "TEE-R", v.SKU)

	bare, err := repo.GetVariant(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, "", bare.Attribute("pa_szin"))
}

func TestDynamoCatalogAdapter_ListProductsPages(t *testing.T) {
	fake := newFakeDynamo()
	repo := NewDynamoCatalogAdapter(fake, "Catalog")
	seedCatalog(t, repo)

	products, err := repo.ListProducts(context.Background())
	require.NoError(t, err)

	var ids []int64
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int64{10, 20, 30}, ids)
	assert.Equal(t, 3, fake.scanSeen)
}

func TestDynamoCatalogAdapter_ListProductsError(t *testing.T) {
	fake := newFakeDynamo()
	fake.scanErr = errors.New("throttled")
	repo := NewDynamoCatalogAdapter(fake, "Catalog")

	_, err := repo.ListProducts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}
