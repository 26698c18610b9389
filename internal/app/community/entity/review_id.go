package entity

import (
	"fmt"
	"strconv"
)

// ReviewID строит синтетический идентификатор отзыва внешнего каталога.
// Идентификатор позиционный: index - это позиция отзыва в списке отзывов
// товара на момент загрузки. Если внешний каталог изменит порядок отзывов,
// идентификаторы молча укажут на другой контент. Известное ограничение,
// вся деривация изолирована здесь.
func ReviewID(productID string, index int) string {
	return fmt.Sprintf("product_%s_review_%d", productID, index)
}

// ArticleID строит идентификатор товара как статьи для комментариев
func ArticleID(productID string) string {
	return "product_" + productID
}

// FormatProductID приводит идентификатор товара из декодированного JSON
// к строке. Внешний каталог отдает числовые ID, которые после
// json.Unmarshal в map[string]any становятся float64
func FormatProductID(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}
