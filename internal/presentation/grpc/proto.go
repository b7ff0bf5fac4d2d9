package grpc

// proto.go defines the gRPC server interface derived from
// harborbank/servicing/v1/servicing.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with the
// import from github.com/harborbank/servicing/api/gen/go/servicing/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServicingServiceServer is the server API for ServicingService.
// It mirrors the proto-generated interface from harborbank.servicing.v1.ServicingService.
type ServicingServiceServer interface {
	GetSchedule(context.Context, *GetScheduleRequest) (*GetScheduleResponse, error)
	CalculatePayment(context.Context, *CalculatePaymentRequest) (*CalculatePaymentResponse, error)
	AllocatePayment(context.Context, *AllocatePaymentRequest) (*AllocatePaymentResponse, error)
	RecalculatePrepayment(context.Context, *RecalculatePrepaymentRequest) (*RecalculatePrepaymentResponse, error)
	mustEmbedUnimplementedServicingServiceServer()
}

// UnimplementedServicingServiceServer provides forward-compatible default implementations.
type UnimplementedServicingServiceServer struct{}

func (UnimplementedServicingServiceServer) GetSchedule(context.Context, *GetScheduleRequest) (*GetScheduleResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetSchedule not implemented")
}
func (UnimplementedServicingServiceServer) CalculatePayment(context.Context, *CalculatePaymentRequest) (*CalculatePaymentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CalculatePayment not implemented")
}
func (UnimplementedServicingServiceServer) AllocatePayment(context.Context, *AllocatePaymentRequest) (*AllocatePaymentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AllocatePayment not implemented")
}
func (UnimplementedServicingServiceServer) RecalculatePrepayment(context.Context, *RecalculatePrepaymentRequest) (*RecalculatePrepaymentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RecalculatePrepayment not implemented")
}
func (UnimplementedServicingServiceServer) mustEmbedUnimplementedServicingServiceServer() {}

// RegisterServicingServiceServer registers the ServicingServiceServer with the gRPC server.
func RegisterServicingServiceServer(s *grpclib.Server, srv ServicingServiceServer) {
	s.RegisterService(&_ServicingService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _ServicingService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "harborbank.servicing.v1.ServicingService",
	HandlerType: (*ServicingServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "GetSchedule", Handler: _ServicingService_GetSchedule_Handler},                     //nolint:revive // gRPC handler registration
		{MethodName: "CalculatePayment", Handler: _ServicingService_CalculatePayment_Handler},           //nolint:revive // gRPC handler registration
		{MethodName: "AllocatePayment", Handler: _ServicingService_AllocatePayment_Handler},             //nolint:revive // gRPC handler registration
		{MethodName: "RecalculatePrepayment", Handler: _ServicingService_RecalculatePrepayment_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _ServicingService_GetSchedule_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetScheduleRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ServicingServiceServer).GetSchedule(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/harborbank.servicing.v1.ServicingService/GetSchedule",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ServicingServiceServer).GetSchedule(ctx, req.(*GetScheduleRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ServicingService_CalculatePayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CalculatePaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ServicingServiceServer).CalculatePayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/harborbank.servicing.v1.ServicingService/CalculatePayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ServicingServiceServer).CalculatePayment(ctx, req.(*CalculatePaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ServicingService_AllocatePayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(AllocatePaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ServicingServiceServer).AllocatePayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/harborbank.servicing.v1.ServicingService/AllocatePayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ServicingServiceServer).AllocatePayment(ctx, req.(*AllocatePaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ServicingService_RecalculatePrepayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RecalculatePrepaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ServicingServiceServer).RecalculatePrepayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/harborbank.servicing.v1.ServicingService/RecalculatePrepayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ServicingServiceServer).RecalculatePrepayment(ctx, req.(*RecalculatePrepaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}
