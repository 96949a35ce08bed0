package grpc

// proto.go defines the gRPC server interface for bib/channeling/v1/channeling.proto.
// Messages travel with the JSON codec registered in json_codec.go. Amounts are
// decimal strings, dates are YYYY-MM-DD and timestamps are RFC 3339.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const serviceName = "bib.channeling.v1.ChannelingService"

const (
	MethodGenerateSchedule = "/" + serviceName + "/GenerateSchedule"
	MethodGetSchedule      = "/" + serviceName + "/GetSchedule"
	MethodUpsertRateConfig = "/" + serviceName + "/UpsertRateConfig"
)

type Installment struct {
	PaymentID string `json:"payment_id"`
	DueDate   string `json:"due_date"`
}

type GenerateScheduleRequest struct {
	LoanID             string         `json:"loan_id"`
	TenantID           string         `json:"tenant_id,omitempty"`
	ChannelingType     string         `json:"channeling_type"`
	Principal          string         `json:"principal"`
	AnnualInterestRate string         `json:"annual_interest_rate"`
	DisbursementDate   string         `json:"disbursement_date"`
	LoanCreatedAt      string         `json:"loan_created_at,omitempty"`
	FundTransferAt     string         `json:"fund_transfer_at,omitempty"`
	Installments       []*Installment `json:"installments"`
	DurationMonths     int32          `json:"duration_months"`
	DaysInYear         int32          `json:"days_in_year"`
}

type ScheduleEntry struct {
	PaymentID            string `json:"payment_id"`
	DueDate              string `json:"due_date"`
	ChannelingType       string `json:"channeling_type"`
	DueAmount            string `json:"due_amount"`
	PrincipalAmount      string `json:"principal_amount"`
	InterestAmount       string `json:"interest_amount"`
	ActualDailyInterest  string `json:"actual_daily_interest"`
	OutstandingPrincipal string `json:"outstanding_principal"`
}

type Schedule struct {
	InterestByPayment map[string]string `json:"interest_by_payment"`
	LoanID            string            `json:"loan_id"`
	ChannelingType    string            `json:"channeling_type"`
	TotalPrincipal    string            `json:"total_principal"`
	TotalInterest     string            `json:"total_interest"`
	TotalDue          string            `json:"total_due"`
	Entries           []*ScheduleEntry  `json:"entries"`
}

type GenerateScheduleResponse struct {
	Schedule *Schedule `json:"schedule"`
}

type GetScheduleRequest struct {
	LoanID string `json:"loan_id"`
}

type GetScheduleResponse struct {
	Schedule *Schedule `json:"schedule"`
}

type UpsertRateConfigRequest struct {
	Rates          map[string]string `json:"rates"`
	ChannelingType string            `json:"channeling_type"`
	Active         bool              `json:"active"`
}

type UpsertRateConfigResponse struct {
	Rates          map[string]string `json:"rates"`
	ChannelingType string            `json:"channeling_type"`
	Active         bool              `json:"active"`
}

// ChannelingServiceServer is the server API for ChannelingService.
type ChannelingServiceServer interface {
	GenerateSchedule(context.Context, *GenerateScheduleRequest) (*GenerateScheduleResponse, error)
	GetSchedule(context.Context, *GetScheduleRequest) (*GetScheduleResponse, error)
	UpsertRateConfig(context.Context, *UpsertRateConfigRequest) (*UpsertRateConfigResponse, error)
	mustEmbedUnimplementedChannelingServiceServer()
}

// UnimplementedChannelingServiceServer provides forward-compatible default implementations.
type UnimplementedChannelingServiceServer struct{}

func (UnimplementedChannelingServiceServer) GenerateSchedule(context.Context, *GenerateScheduleRequest) (*GenerateScheduleResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GenerateSchedule not implemented")
}
func (UnimplementedChannelingServiceServer) GetSchedule(context.Context, *GetScheduleRequest) (*GetScheduleResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetSchedule not implemented")
}
func (UnimplementedChannelingServiceServer) UpsertRateConfig(context.Context, *UpsertRateConfigRequest) (*UpsertRateConfigResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpsertRateConfig not implemented")
}
func (UnimplementedChannelingServiceServer) mustEmbedUnimplementedChannelingServiceServer() {}

// RegisterChannelingServiceServer registers srv with s.
func RegisterChannelingServiceServer(s grpclib.ServiceRegistrar, srv ChannelingServiceServer) {
	s.RegisterService(&channelingServiceDesc, srv)
}

var channelingServiceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ChannelingServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "GenerateSchedule", Handler: generateScheduleHandler},
		{MethodName: "GetSchedule", Handler: getScheduleHandler},
		{MethodName: "UpsertRateConfig", Handler: upsertRateConfigHandler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "bib/channeling/v1/channeling.proto",
}

func generateScheduleHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GenerateScheduleRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChannelingServiceServer).GenerateSchedule(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodGenerateSchedule}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChannelingServiceServer).GenerateSchedule(ctx, req.(*GenerateScheduleRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getScheduleHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetScheduleRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChannelingServiceServer).GetSchedule(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodGetSchedule}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChannelingServiceServer).GetSchedule(ctx, req.(*GetScheduleRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func upsertRateConfigHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(UpsertRateConfigRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChannelingServiceServer).UpsertRateConfig(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodUpsertRateConfig}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChannelingServiceServer).UpsertRateConfig(ctx, req.(*UpsertRateConfigRequest))
	}
	return interceptor(ctx, in, info, handler)
}
