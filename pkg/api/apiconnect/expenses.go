package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/acerto/acerto/pkg/api"
)

// ExpenseServiceName is the fully-qualified name of the ExpenseService.
const ExpenseServiceName = "acerto.v1.ExpenseService"

// Procedure paths of the ExpenseService.
const (
	ExpenseServiceListExpensesProcedure   = "/acerto.v1.ExpenseService/ListExpenses"
	ExpenseServiceCreateExpenseProcedure  = "/acerto.v1.ExpenseService/CreateExpense"
	ExpenseServiceDeleteExpenseProcedure  = "/acerto.v1.ExpenseService/DeleteExpense"
	ExpenseServiceMarkPaidProcedure       = "/acerto.v1.ExpenseService/MarkPaid"
	ExpenseServiceUpdateProofProcedure    = "/acerto.v1.ExpenseService/UpdateProof"
	ExpenseServiceUploadProofProcedure    = "/acerto.v1.ExpenseService/UploadProof"
	ExpenseServicePreviewSplitProcedure   = "/acerto.v1.ExpenseService/PreviewSplit"
	ExpenseServiceGetBalancesProcedure    = "/acerto.v1.ExpenseService/GetBalances"
	ExpenseServiceListCategoriesProcedure = "/acerto.v1.ExpenseService/ListCategories"
)

// ExpenseServiceHandler records expenses and their payment state.
type ExpenseServiceHandler interface {
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	MarkPaid(context.Context, *connect.Request[api.MarkPaidRequest]) (*connect.Response[api.MarkPaidResponse], error)
	UpdateProof(context.Context, *connect.Request[api.UpdateProofRequest]) (*connect.Response[api.UpdateProofResponse], error)
	UploadProof(context.Context, *connect.Request[api.UploadProofRequest]) (*connect.Response[api.UploadProofResponse], error)
	PreviewSplit(context.Context, *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler for svc and returns it with the
// path it should be mounted on.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + ExpenseServiceName + "/", route(map[string]http.Handler{
		ExpenseServiceListExpensesProcedure:   connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts...),
		ExpenseServiceCreateExpenseProcedure:  connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...),
		ExpenseServiceDeleteExpenseProcedure:  connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...),
		ExpenseServiceMarkPaidProcedure:       connect.NewUnaryHandler(ExpenseServiceMarkPaidProcedure, svc.MarkPaid, opts...),
		ExpenseServiceUpdateProofProcedure:    connect.NewUnaryHandler(ExpenseServiceUpdateProofProcedure, svc.UpdateProof, opts...),
		ExpenseServiceUploadProofProcedure:    connect.NewUnaryHandler(ExpenseServiceUploadProofProcedure, svc.UploadProof, opts...),
		ExpenseServicePreviewSplitProcedure:   connect.NewUnaryHandler(ExpenseServicePreviewSplitProcedure, svc.PreviewSplit, opts...),
		ExpenseServiceGetBalancesProcedure:    connect.NewUnaryHandler(ExpenseServiceGetBalancesProcedure, svc.GetBalances, opts...),
		ExpenseServiceListCategoriesProcedure: connect.NewUnaryHandler(ExpenseServiceListCategoriesProcedure, svc.ListCategories, opts...),
	})
}

// ExpenseServiceClient is a client for the ExpenseService.
type ExpenseServiceClient interface {
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	MarkPaid(context.Context, *connect.Request[api.MarkPaidRequest]) (*connect.Response[api.MarkPaidResponse], error)
	UpdateProof(context.Context, *connect.Request[api.UpdateProofRequest]) (*connect.Response[api.UpdateProofResponse], error)
	UploadProof(context.Context, *connect.Request[api.UploadProofRequest]) (*connect.Response[api.UploadProofResponse], error)
	PreviewSplit(context.Context, *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
}

// NewExpenseServiceClient returns a client for the service served at baseURL.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ExpenseServiceClient {
	baseURL = trimBase(baseURL)
	opts = clientOptions(opts)
	return &expenseServiceClient{
		listExpenses:   connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL+ExpenseServiceListExpensesProcedure, opts...),
		createExpense:  connect.NewClient[api.CreateExpenseRequest, api.CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opts...),
		deleteExpense:  connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...),
		markPaid:       connect.NewClient[api.MarkPaidRequest, api.MarkPaidResponse](httpClient, baseURL+ExpenseServiceMarkPaidProcedure, opts...),
		updateProof:    connect.NewClient[api.UpdateProofRequest, api.UpdateProofResponse](httpClient, baseURL+ExpenseServiceUpdateProofProcedure, opts...),
		uploadProof:    connect.NewClient[api.UploadProofRequest, api.UploadProofResponse](httpClient, baseURL+ExpenseServiceUploadProofProcedure, opts...),
		previewSplit:   connect.NewClient[api.PreviewSplitRequest, api.PreviewSplitResponse](httpClient, baseURL+ExpenseServicePreviewSplitProcedure, opts...),
		getBalances:    connect.NewClient[api.GetBalancesRequest, api.GetBalancesResponse](httpClient, baseURL+ExpenseServiceGetBalancesProcedure, opts...),
		listCategories: connect.NewClient[api.ListCategoriesRequest, api.ListCategoriesResponse](httpClient, baseURL+ExpenseServiceListCategoriesProcedure, opts...),
	}
}

type expenseServiceClient struct {
	listExpenses   *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	createExpense  *connect.Client[api.CreateExpenseRequest, api.CreateExpenseResponse]
	deleteExpense  *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	markPaid       *connect.Client[api.MarkPaidRequest, api.MarkPaidResponse]
	updateProof    *connect.Client[api.UpdateProofRequest, api.UpdateProofResponse]
	uploadProof    *connect.Client[api.UploadProofRequest, api.UploadProofResponse]
	previewSplit   *connect.Client[api.PreviewSplitRequest, api.PreviewSplitResponse]
	getBalances    *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
	listCategories *connect.Client[api.ListCategoriesRequest, api.ListCategoriesResponse]
}

func (c *expenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *expenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) MarkPaid(ctx context.Context, req *connect.Request[api.MarkPaidRequest]) (*connect.Response[api.MarkPaidResponse], error) {
	return c.markPaid.CallUnary(ctx, req)
}

func (c *expenseServiceClient) UpdateProof(ctx context.Context, req *connect.Request[api.UpdateProofRequest]) (*connect.Response[api.UpdateProofResponse], error) {
	return c.updateProof.CallUnary(ctx, req)
}

func (c *expenseServiceClient) UploadProof(ctx context.Context, req *connect.Request[api.UploadProofRequest]) (*connect.Response[api.UploadProofResponse], error) {
	return c.uploadProof.CallUnary(ctx, req)
}

func (c *expenseServiceClient) PreviewSplit(ctx context.Context, req *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	return c.previewSplit.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	return c.listCategories.CallUnary(ctx, req)
}

// UnimplementedExpenseServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedExpenseServiceHandler struct{}

func (UnimplementedExpenseServiceHandler) ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return nil, unimplemented(ExpenseServiceListExpensesProcedure)
}

func (UnimplementedExpenseServiceHandler) CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return nil, unimplemented(ExpenseServiceCreateExpenseProcedure)
}

func (UnimplementedExpenseServiceHandler) DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return nil, unimplemented(ExpenseServiceDeleteExpenseProcedure)
}

func (UnimplementedExpenseServiceHandler) MarkPaid(context.Context, *connect.Request[api.MarkPaidRequest]) (*connect.Response[api.MarkPaidResponse], error) {
	return nil, unimplemented(ExpenseServiceMarkPaidProcedure)
}

func (UnimplementedExpenseServiceHandler) UpdateProof(context.Context, *connect.Request[api.UpdateProofRequest]) (*connect.Response[api.UpdateProofResponse], error) {
	return nil, unimplemented(ExpenseServiceUpdateProofProcedure)
}

func (UnimplementedExpenseServiceHandler) UploadProof(context.Context, *connect.Request[api.UploadProofRequest]) (*connect.Response[api.UploadProofResponse], error) {
	return nil, unimplemented(ExpenseServiceUploadProofProcedure)
}

func (UnimplementedExpenseServiceHandler) PreviewSplit(context.Context, *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	return nil, unimplemented(ExpenseServicePreviewSplitProcedure)
}

func (UnimplementedExpenseServiceHandler) GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return nil, unimplemented(ExpenseServiceGetBalancesProcedure)
}

func (UnimplementedExpenseServiceHandler) ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	return nil, unimplemented(ExpenseServiceListCategoriesProcedure)
}
