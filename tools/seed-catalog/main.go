// Command seed-catalog loads a JSON catalog fixture into the DynamoDB catalog table.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"variant-export-service/models"
	awspkg "variant-export-service/pkg/aws"
	"variant-export-service/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type catalogFixture struct {
	Products []models.Product `json:"products"`
	Variants []models.Variant `json:"variants"`
}

// catalogWriter is implemented by repository.DynamoCatalogAdapter.
type catalogWriter interface {
	PutProduct(ctx context.Context, p *models.Product) error
	PutVariant(ctx context.Context, v *models.Variant) error
}

func main() {
	_ = godotenv.Load()

	var file, table string
	var createTable bool
	flag.StringVar(&file, "file", "catalog.json", "JSON fixture with products and variants")
	flag.StringVar(&table, "table", os.Getenv("DDB_TABLE_CATALOG"), "DynamoDB table name")
	flag.BoolVar(&createTable, "create-table", false, "create the table if it does not exist")
	flag.Parse()
	if table == "" {
		table = "Catalog"
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	f, err := os.Open(file)
	if err != nil {
		logger.Fatal("open fixture", zap.Error(err))
	}
	defer f.Close()

	fixture, err := loadFixture(f)
	if err != nil {
		logger.Fatal("invalid fixture", zap.String("file", file), zap.Error(err))
	}

	ctx := context.Background()
	awsCfg, err := awspkg.LoadAWSConfig(ctx, awspkg.Options{
		Region:   os.Getenv("AWS_REGION"),
		Endpoint: os.Getenv("AWS_ENDPOINT"),
	})
	if err != nil {
		logger.Fatal("aws config", zap.Error(err))
	}
	ddbClient := dynamodb.NewFromConfig(awsCfg)

	if createTable {
		if err := ensureTable(ctx, ddbClient, table); err != nil {
			logger.Fatal("create table", zap.String("table", table), zap.Error(err))
		}
	}

	repo := repository.NewDynamoCatalogAdapter(ddbClient, table)
	products, variants, failed := seed(ctx, repo, fixture, logger)
	logger.Info("Seeding complete",
		zap.String("table", table),
		zap.Int("products", products),
		zap.Int("variants", variants),
		zap.Int("failed", failed),
	)
	if failed > 0 {
		os.Exit(1)
	}
}

// loadFixture decodes and checks a fixture. Every variant must reference a
// product that lists it.
func loadFixture(r io.Reader) (*catalogFixture, error) {
	var fx catalogFixture
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fx); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}

	children := map[int64]map[int64]bool{}
	for _, p := range fx.Products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("product %q has invalid id %d", p.Name, p.ID)
		}
		if _, dup := children[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		children[p.ID] = map[int64]bool{}
		for _, vid := range p.VariationIDs {
			children[p.ID][vid] = true
		}
	}
	for _, v := range fx.Variants {
		if v.ID <= 0 {
			return nil, fmt.Errorf("variant has invalid id %d", v.ID)
		}
		kids, ok := children[v.ParentID]
		if !ok {
			return nil, fmt.Errorf("variant %d references unknown product %d", v.ID, v.ParentID)
		}
		if !kids[v.ID] {
			return nil, fmt.Errorf("variant %d is not listed in product %d variation_ids", v.ID, v.ParentID)
		}
	}
	return &fx, nil
}

func seed(ctx context.Context, w catalogWriter, fx *catalogFixture, logger *zap.Logger) (products, variants, failed int) {
	now := time.Now().UTC()
	for i := range fx.Products {
		p := &fx.Products[i]
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		if err := w.PutProduct(ctx, p); err != nil {
			logger.Error("failed to write product", zap.Int64("id", p.ID), zap.Error(err))
			failed++
			continue
		}
		products++
	}
	for i := range fx.Variants {
		v := &fx.Variants[i]
		if err := w.PutVariant(ctx, v); err != nil {
			logger.Error("failed to write variant", zap.Int64("id", v.ID), zap.Error(err))
			failed++
			continue
		}
		variants++
	}
	return products, variants, failed
}

func ensureTable(ctx context.Context, client *dynamodb.Client, table string) error {
	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("post_id"), AttributeType: types.ScalarAttributeTypeN},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("post_id"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	var inUse *types.ResourceInUseException
	if err != nil && !errors.As(err, &inUse) {
		return err
	}
	waiter := dynamodb.NewTableExistsWaiter(client)
	return waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)}, 2*time.Minute)
}
