package ws

import (
	"errors"

	"github.com/go-viper/mapstructure/v2"
)

// Bind 把 Body.Msg 按 json tag 解到 dst，数字字符串等弱类型会被转换。
func Bind(req *WsMsgReq, dst any) error {
	if req == nil || req.Body == nil {
		return errors.New("ws request body is nil")
	}
	if req.Body.Msg == nil {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           dst,
	})
	if err != nil {
		return err
	}
	return dec.Decode(req.Body.Msg)
}
