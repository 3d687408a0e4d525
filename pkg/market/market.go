package market

import "fmt"

// Class 市场分类
// 仅由股票代码的文本形式推导，不依赖任何外部状态
type Class int

const (
	// ClassUnknown 无法识别的代码形式
	ClassUnknown Class = iota
	// ClassShanghai 上海证券交易所
	ClassShanghai
	// ClassShenzhen 深圳证券交易所
	ClassShenzhen
	// ClassBeijing 北京证券交易所
	ClassBeijing
	// ClassIndex 指数
	ClassIndex
)

// String 返回市场分类名称
func (c Class) String() string {
	switch c {
	case ClassShanghai:
		return "shanghai"
	case ClassShenzhen:
		return "shenzhen"
	case ClassBeijing:
		return "beijing"
	case ClassIndex:
		return "index"
	default:
		return "unknown"
	}
}

// Classify 根据 6 位代码的前缀推导市场分类
//
// 规则:
//
//	000 开头        沪市指数
//	399 开头        深市指数
//	6 或 9 开头     沪市股票
//	4 或 8 开头     北交所股票
//	其余数字代码    深市股票
//
// 非 6 位或含非数字字符的代码返回 ClassUnknown
func Classify(code string) Class {
	if !isNumeric6(code) {
		return ClassUnknown
	}

	if code[:3] == "000" || code[:3] == "399" {
		return ClassIndex
	}

	switch code[0] {
	case '6', '9':
		return ClassShanghai
	case '4', '8':
		return ClassBeijing
	default:
		return ClassShenzhen
	}
}

// MarketDigit 返回行情接口使用的市场编号
// 沪市(含沪市指数)为 1，深市、北交所(含深市指数)为 0
func MarketDigit(code string) int {
	if !isNumeric6(code) {
		return 0
	}
	if code[:3] == "000" {
		return 1
	}
	if code[:3] == "399" {
		return 0
	}
	if code[0] == '6' || code[0] == '9' {
		return 1
	}
	return 0
}

// SecID 生成行情接口要求的复合标识 "{市场编号}.{代码}"
// 每次调用都重新计算，不做缓存
func SecID(code string) string {
	return fmt.Sprintf("%d.%s", MarketDigit(code), code)
}

// FC 生成股东信息接口要求的标识
// 沪市为 "{代码}01"，其余为 "{代码}02"
func FC(code string) string {
	if MarketDigit(code) == 1 {
		return code + "01"
	}
	return code + "02"
}

// isNumeric6 判断是否为 6 位纯数字代码
func isNumeric6(code string) bool {
	if len(code) != 6 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
