package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// DateLayout 日期存储格式
const DateLayout = "2006-01-02"

// DateText 以 ISO 文本保存的日期
//
// SQLite 驱动会把声明为 DATE 的列读成 time.Time，这里统一还原为 YYYY-MM-DD 文本；
// 无法解析的存量值按原样保留。
type DateText string

// Scan 实现 sql.Scanner
func (d *DateText) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = DateText(v.Format(DateLayout))
	case string:
		*d = DateText(v)
	case []byte:
		*d = DateText(v)
	default:
		return fmt.Errorf("DateText.Scan: unsupported type %T", src)
	}
	return nil
}

// Value 实现 driver.Valuer
func (d DateText) Value() (driver.Value, error) {
	return string(d), nil
}

// Time 解析为 time.Time
func (d DateText) Time() (time.Time, error) {
	return time.Parse(DateLayout, string(d))
}

// Display 渲染为 DD.MM.YYYY，无法解析时返回原值
func (d DateText) Display() string {
	t, err := d.Time()
	if err != nil {
		return string(d)
	}
	return t.Format("02.01.2006")
}
