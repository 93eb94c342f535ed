package response

// 业务状态码
const (
	CodeSuccess = 0
	CodeError   = 1

	// 用户模块错误 100xx
	ErrUserExists   = 10001
	ErrUserNotFound = 10002
	ErrAuthFailed   = 10003
	ErrTokenInvalid = 10004
	ErrNoPermission = 10005

	// 商品/店铺模块错误 200xx
	ErrShopNotFound       = 20001
	ErrProductNotFound    = 20002
	ErrProductUnavailable = 20003

	// 预约模块错误 300xx
	ErrBookingNotFound  = 30001
	ErrServiceNotFound  = 30002
	ErrBookingCancelled = 30003

	// 订单模块错误 400xx
	ErrOrderNotFound   = 40001
	ErrOrderNotPayable = 40002

	// 系统错误 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003

	// 宝石模块错误 600xx
	ErrLedgerUnavailable = 60001
	ErrInvalidAdjustment = 60002

	// 挑战模块错误 700xx
	ErrChallengeNotFound = 70001
	ErrRewardOutOfStock  = 70002
	ErrChallengeClaimed  = 70003

	// 社区模块错误 800xx
	ErrPostNotFound    = 80001
	ErrPostNotApproved = 80002
)
