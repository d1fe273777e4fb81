package convert

import (
	"sort"

	"github.com/bytedance/sonic"
	"github.com/jinzhu/copier"
)

// StructAssign
// dst 目标结构体，src 源结构体
// 它会把 src 与 dst 的相同字段名的值深拷贝到 dst 中
func StructAssign(src any, dst any) error {
	return copier.CopyWithOption(dst, src, copier.Option{DeepCopy: true})
}

// StructToMap 结构体转 map，键名取 json 标签
func StructToMap(param any, data map[string]interface{}) error {
	str, err := sonic.Marshal(param)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(str, &data)
}

// SetFields 返回结构体中取值非 null 的 json 字段名（已排序）
func SetFields(param any) []string {
	data := make(map[string]interface{})
	if err := StructToMap(param, data); err != nil {
		return nil
	}
	keys := make([]string, 0, len(data))
	for k, v := range data {
		if v != nil {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
