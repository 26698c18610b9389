package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReviewID(t *testing.T) {
	assert.Equal(t, "product_1_review_0", ReviewID("1", 0))
	assert.Equal(t, "product_42_review_17", ReviewID("42", 17))
}

func TestArticleID(t *testing.T) {
	assert.Equal(t, "product_1", ArticleID("1"))
}

func TestFormatProductID(t *testing.T) {
	// JSON-числа после декодирования в map[string]any становятся float64
	assert.Equal(t, "1", FormatProductID(float64(1)))
	assert.Equal(t, "100", FormatProductID(float64(100)))
	assert.Equal(t, "sku-1", FormatProductID("sku-1"))
	assert.Equal(t, "7", FormatProductID(7))
	assert.Equal(t, "9", FormatProductID(int64(9)))
	assert.Equal(t, "", FormatProductID(nil))
}
