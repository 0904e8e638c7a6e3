package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid   = errors.New("参数错误")
	ErrNoRunAvailable = errors.New("暂无分析结果，请先运行一次管道")
	ErrRunInProgress  = errors.New("已有分析任务在运行中")
	UnExpectedError   = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:   BadRequest,
	ErrNoRunAvailable: NotFound,
	ErrRunInProgress:  Conflict,
	UnExpectedError:   InternalServerError,
}
