package service

// Error 业务错误：Code 直接用 HTTP 语义（400/401/404/409/500）
type Error struct {
	Code int
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "service error"
}

func (e *Error) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &Error{Code: 400, Msg: msg} }
func Unauthorized(msg string) error { return &Error{Code: 401, Msg: msg} }
func NotFound(msg string) error     { return &Error{Code: 404, Msg: msg} }
func Conflict(msg string) error     { return &Error{Code: 409, Msg: msg} }
func Internal(msg string, err error) error {
	return &Error{Code: 500, Msg: msg, Err: err}
}

// 登录失败统一一句话：查无此人和密码错误不可区分，防枚举
const invalidCredentialsMsg = "Invalid email or password"

func InvalidCredentials() error { return Unauthorized(invalidCredentialsMsg) }
