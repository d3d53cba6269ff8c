package sl

import "go.uber.org/zap"

func Err(err error) zap.Field {
	if err == nil {
		return zap.Skip()
	}
	return zap.String("error", err.Error())
}

func Op(op string) zap.Field {
	return zap.String("op", op)
}
