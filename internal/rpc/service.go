package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "flyscope.accounts.v1.Accounts"

const (
	MethodRegister   = "Register"
	MethodLogin      = "Login"
	MethodLogout     = "Logout"
	MethodWhoAmI     = "WhoAmI"
	MethodListUsers  = "ListUsers"
	MethodDeleteUser = "DeleteUser"
	MethodStats      = "Stats"
	MethodPing       = "Ping"
)

// FullMethod returns the gRPC path of method, e.g.
// "/flyscope.accounts.v1.Accounts/Login".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// AccountsServer is implemented by the accounts server.
type AccountsServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	WhoAmI(context.Context, *WhoAmIRequest) (*WhoAmIResponse, error)
	ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error)
	DeleteUser(context.Context, *DeleteUserRequest) (*DeleteUserResponse, error)
	Stats(context.Context, *StatsRequest) (*StatsResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// unary adapts a typed AccountsServer method to a grpc.MethodDesc.
func unary[Req, Resp any](method string, call func(AccountsServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AccountsServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(AccountsServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountsServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodRegister, AccountsServer.Register),
		unary(MethodLogin, AccountsServer.Login),
		unary(MethodLogout, AccountsServer.Logout),
		unary(MethodWhoAmI, AccountsServer.WhoAmI),
		unary(MethodListUsers, AccountsServer.ListUsers),
		unary(MethodDeleteUser, AccountsServer.DeleteUser),
		unary(MethodStats, AccountsServer.Stats),
		unary(MethodPing, AccountsServer.Ping),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "flyscope/accounts/v1",
}

func RegisterAccountsServer(s grpc.ServiceRegistrar, srv AccountsServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// AccountsClient is the client stub of the accounts service. Every call is
// sent with the JSON content subtype.
type AccountsClient struct {
	cc grpc.ClientConnInterface
}

func NewAccountsClient(cc grpc.ClientConnInterface) *AccountsClient {
	return &AccountsClient{cc: cc}
}

func invoke[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in *Req, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AccountsClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterRequest, RegisterResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *AccountsClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginRequest, LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *AccountsClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutRequest, LogoutResponse](ctx, c.cc, MethodLogout, in, opts)
}

func (c *AccountsClient) WhoAmI(ctx context.Context, in *WhoAmIRequest, opts ...grpc.CallOption) (*WhoAmIResponse, error) {
	return invoke[WhoAmIRequest, WhoAmIResponse](ctx, c.cc, MethodWhoAmI, in, opts)
}

func (c *AccountsClient) ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	return invoke[ListUsersRequest, ListUsersResponse](ctx, c.cc, MethodListUsers, in, opts)
}

func (c *AccountsClient) DeleteUser(ctx context.Context, in *DeleteUserRequest, opts ...grpc.CallOption) (*DeleteUserResponse, error) {
	return invoke[DeleteUserRequest, DeleteUserResponse](ctx, c.cc, MethodDeleteUser, in, opts)
}

func (c *AccountsClient) Stats(ctx context.Context, in *StatsRequest, opts ...grpc.CallOption) (*StatsResponse, error) {
	return invoke[StatsRequest, StatsResponse](ctx, c.cc, MethodStats, in, opts)
}

func (c *AccountsClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingRequest, PingResponse](ctx, c.cc, MethodPing, in, opts)
}
