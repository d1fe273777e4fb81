// Package timex wraps time.Time with the JSON and database encodings used by the API
// Package timex 封装 time.Time，统一 API 与数据库中的时间编码
package timex

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Layout is the wire format of every timestamp (RFC 3339, nanoseconds, UTC)
// Layout 所有时间戳的传输格式（RFC 3339，纳秒，UTC）
const Layout = time.RFC3339Nano

// Time is a time.Time that always serializes in UTC
// Time 始终以 UTC 序列化的时间类型
type Time time.Time

// Now returns the current UTC time
// Now 返回当前 UTC 时间
func Now() Time {
	return Time(time.Now().UTC())
}

func (t Time) Time() time.Time {
	return time.Time(t)
}

func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

func (t Time) UnixMicro() int64 {
	return time.Time(t).UnixMicro()
}

func (t Time) UnixNano() int64 {
	return time.Time(t).UnixNano()
}

func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t Time) Before(u Time) bool {
	return time.Time(t).Before(time.Time(u))
}

func (t Time) Equal(u Time) bool {
	return time.Time(t).Equal(time.Time(u))
}

func (t Time) String() string {
	return time.Time(t).UTC().Format(Layout)
}

// MarshalJSON 序列化为 RFC 3339 字符串，零值输出 null
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON 解析 RFC 3339 字符串
func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*t = Time{}
		return nil
	}
	parsed, err := time.Parse(Layout, s)
	if err != nil {
		return err
	}
	*t = Time(parsed.UTC())
	return nil
}

// Value 实现 driver.Valuer，写入数据库
func (t Time) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return time.Time(t).UTC(), nil
}

// Scan 实现 sql.Scanner，从数据库读取
func (t *Time) Scan(v interface{}) error {
	switch value := v.(type) {
	case nil:
		*t = Time{}
	case time.Time:
		*t = Time(value.UTC())
	case string:
		return t.parseString(value)
	case []byte:
		return t.parseString(string(value))
	default:
		return fmt.Errorf("timex: cannot scan %T into Time", v)
	}
	return nil
}

// parseString sqlite 驱动可能以文本返回时间
func (t *Time) parseString(s string) error {
	for _, layout := range []string{Layout, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05.999999999", "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = Time(parsed.UTC())
			return nil
		}
	}
	return fmt.Errorf("timex: cannot parse %q", s)
}

// GormDataType 让 gorm 按各数据库方言的时间类型建表
func (Time) GormDataType() string {
	return "time"
}
