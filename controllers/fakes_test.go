package controllers

import (
	"context"

	"variant-export-service/models"
	"variant-export-service/services"
)

type fakeScanner struct {
	calls       int
	lastIDs     []int64
	lastSetting models.Settings
	result      *services.ScanResult
	err         error
}

func (f *fakeScanner) Scan(ctx context.Context, ids []int64, settings models.Settings) (*services.ScanResult, error) {
	f.calls++
	f.lastIDs = ids
	f.lastSetting = settings
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &services.ScanResult{Types: []string{}, Colors: []string{}, Sizes: []string{}, Warnings: []string{}}, nil
}

type fakeGenerator struct {
	lastIDs       []int64
	lastSelection models.AttributeSelection
	err           error
}

func (f *fakeGenerator) Generate(ctx context.Context, ids []int64, sel models.AttributeSelection, settings models.Settings) (*services.GenerateResult, error) {
	f.lastIDs = ids
	f.lastSelection = sel
	if f.err != nil {
		return nil, f.err
	}
	return &services.GenerateResult{SessionID: "exp_abc", RowCount: len(ids), Warnings: []string{}}, nil
}

type fakeSessions struct {
	calls             int
	lastID            string
	lastPage, lastPer int
	err               error
}

func (f *fakeSessions) Page(ctx context.Context, id string, page, perPage int) (*services.PageResult, error) {
	f.calls++
	f.lastID, f.lastPage, f.lastPer = id, page, perPage
	if f.err != nil {
		return nil, f.err
	}
	return &services.PageResult{Items: []models.ExportRow{}, Page: page, PerPage: perPage, Warnings: []string{}}, nil
}

type fakeExporter struct {
	data     []byte
	filename string
	err      error
}

func (f *fakeExporter) Export(ctx context.Context, id string) ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.data, f.filename, nil
}

type fakeCatalog struct {
	calls      int
	lastParams services.ListProductsParams
	err        error
}

func (f *fakeCatalog) ListProducts(ctx context.Context, params services.ListProductsParams) (*services.ProductPage, error) {
	f.calls++
	f.lastParams = params
	if f.err != nil {
		return nil, f.err
	}
	return &services.ProductPage{
		Items:   []models.ProductSummary{{ID: 1, Name: "Tee", Type: models.ProductTypeVariable}},
		Page:    params.Page,
		PerPage: params.PerPage,
		Total:   1,
	}, nil
}

type fakeSettings struct {
	current models.Settings
	lastUpd services.SettingsUpdate
	getErr  error
	updErr  error
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{current: models.DefaultSettings()}
}

func (f *fakeSettings) Get(ctx context.Context) (models.Settings, error) {
	return f.current, f.getErr
}

func (f *fakeSettings) Update(ctx context.Context, upd services.SettingsUpdate) (models.Settings, error) {
	f.lastUpd = upd
	if f.updErr != nil {
		return models.Settings{}, f.updErr
	}
	if upd.JoinSep != nil {
		f.current.JoinSep = *upd.JoinSep
	}
	return f.current, nil
}
