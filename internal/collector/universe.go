package collector

import "StockBoard/internal/model"

var universe = []model.Instrument{
	{Code: "sh000001", Name: "上证指数", Type: model.TypeIndex},
	{Code: "sz399001", Name: "深证成指", Type: model.TypeIndex},
	{Code: "sz399006", Name: "创业板指", Type: model.TypeIndex},
	{Code: "sh600000", Name: "浦发银行", Type: model.TypeStock, Industry: "银行"},
	{Code: "sh600036", Name: "招商银行", Type: model.TypeStock, Industry: "银行"},
	{Code: "sh601318", Name: "中国平安", Type: model.TypeStock, Industry: "保险"},
	{Code: "sh600519", Name: "贵州茅台", Type: model.TypeStock, Industry: "白酒"},
	{Code: "sh601988", Name: "中国银行", Type: model.TypeStock, Industry: "银行"},
	{Code: "sz000001", Name: "平安银行", Type: model.TypeStock, Industry: "银行"},
	{Code: "sz000002", Name: "万科A", Type: model.TypeStock, Industry: "房地产"},
	{Code: "sz000063", Name: "中兴通讯", Type: model.TypeStock, Industry: "通信设备"},
	{Code: "sz000333", Name: "美的集团", Type: model.TypeStock, Industry: "家电"},
	{Code: "sz000651", Name: "格力电器", Type: model.TypeStock, Industry: "家电"},
	{Code: "sz000858", Name: "五粮液", Type: model.TypeStock, Industry: "白酒"},
	{Code: "sz002594", Name: "比亚迪", Type: model.TypeStock, Industry: "汽车"},
}

var (
	indexCodes = []string{"sh000001", "sz399001", "sz399006"}
	hotCodes   = []string{"sh600519", "sz000858", "sz002594", "sh601318", "sz000333"}
)

// rankBoard is the fixed base dataset behind all market ranking boards.
var rankBoard = []model.RankedEntry{
	{Code: "sh600519", Name: "贵州茅台", Price: 1856.00, ChangePercent: 5.43, ChangeAmount: 95.67, Volume: 125678, Amount: 233456.78, TurnoverRate: 1.23},
	{Code: "sh601318", Name: "中国平安", Price: 56.78, ChangePercent: 3.56, ChangeAmount: 1.95, Volume: 3456789, Amount: 196345.67, TurnoverRate: 3.45},
	{Code: "sh600036", Name: "招商银行", Price: 45.67, ChangePercent: 4.21, ChangeAmount: 1.84, Volume: 2345678, Amount: 107234.56, TurnoverRate: 2.87},
	{Code: "sz000858", Name: "五粮液", Price: 178.90, ChangePercent: 4.87, ChangeAmount: 8.31, Volume: 987654, Amount: 176543.21, TurnoverRate: 2.34},
	{Code: "sz002594", Name: "比亚迪", Price: 245.67, ChangePercent: 3.45, ChangeAmount: 8.19, Volume: 1234567, Amount: 303456.78, TurnoverRate: 4.56},
	{Code: "sh600276", Name: "恒瑞医药", Price: 56.78, ChangePercent: 0.87, ChangeAmount: 0.49, Volume: 876543, Amount: 49765.43, TurnoverRate: 1.45},
	{Code: "sz000651", Name: "格力电器", Price: 38.45, ChangePercent: 2.11, ChangeAmount: 0.79, Volume: 2345678, Amount: 90123.45, TurnoverRate: 3.21},
	{Code: "sz000002", Name: "万科A", Price: 18.76, ChangePercent: 1.23, ChangeAmount: 0.23, Volume: 3456789, Amount: 64789.12, TurnoverRate: 3.78},
	{Code: "sh601166", Name: "兴业银行", Price: 18.34, ChangePercent: 2.57, ChangeAmount: 0.46, Volume: 2345678, Amount: 43012.34, TurnoverRate: 2.56},
	{Code: "sh600887", Name: "伊利股份", Price: 32.45, ChangePercent: 1.98, ChangeAmount: 0.63, Volume: 1234567, Amount: 40012.34, TurnoverRate: 2.12},
}

// sectorBoard holds one-day sector performance; longer periods scale it.
var sectorBoard = []model.Sector{
	{Name: "银行", Change: 2.35, TopStock: "招商银行", TopChange: 4.21},
	{Name: "保险", Change: 1.87, TopStock: "中国平安", TopChange: 3.56},
	{Name: "证券", Change: 1.65, TopStock: "中信证券", TopChange: 2.98},
	{Name: "房地产", Change: -0.78, TopStock: "万科A", TopChange: 1.23},
	{Name: "医药", Change: -1.25, TopStock: "恒瑞医药", TopChange: 0.87},
	{Name: "食品饮料", Change: 3.42, TopStock: "贵州茅台", TopChange: 5.67},
	{Name: "家电", Change: 0.95, TopStock: "格力电器", TopChange: 2.11},
	{Name: "汽车", Change: 1.32, TopStock: "比亚迪", TopChange: 3.45},
	{Name: "电子", Change: -0.56, TopStock: "京东方A", TopChange: 1.78},
	{Name: "通信", Change: -0.89, TopStock: "中兴通讯", TopChange: 0.65},
	{Name: "计算机", Change: -1.45, TopStock: "浪潮信息", TopChange: 0.92},
	{Name: "传媒", Change: -2.13, TopStock: "分众传媒", TopChange: 0.45},
}

// sectorScale maps a period in days to the (change, top change) multipliers.
var sectorScale = map[int][2]float64{
	1:  {1, 1},
	5:  {1.5, 1.8},
	30: {3, 3.5},
}

var distribution = []model.DistributionBucket{
	{Name: "涨停", Value: 423},
	{Name: "上涨", Value: 1256},
	{Name: "平盘", Value: 187},
	{Name: "下跌", Value: 876},
	{Name: "跌停", Value: 156},
}

var fundFlow = []model.FundFlow{
	{Name: "食品饮料", Value: 35.67},
	{Name: "银行", Value: 28.45},
	{Name: "保险", Value: 15.23},
	{Name: "汽车", Value: 12.78},
	{Name: "家电", Value: 8.92},
	{Name: "证券", Value: 5.34},
	{Name: "电子", Value: -6.78},
	{Name: "房地产", Value: -8.45},
	{Name: "医药", Value: -12.34},
	{Name: "计算机", Value: -15.67},
}

var newsTitles = []string{
	"央行定调下半年货币政策：保持流动性合理充裕",
	"证监会：进一步提高上市公司质量",
	"两市成交额连续三日破万亿",
	"创业板注册制改革满一周年",
	"银保监会：防范化解金融风险攻坚战取得重要阶段性成果",
	"央行：稳步推进数字人民币研发",
	"沪深交易所修订上市规则",
	"证监会：完善资本市场基础制度",
	"财政部：积极的财政政策要提质增效、更可持续",
	"发改委：加快形成以国内大循环为主体的新发展格局",
}

var newsSources = []string{"证券时报", "上海证券报", "中国证券报", "金融时报", "经济参考报"}

var hotNews = []model.News{
	{ID: "hot-news-1", Title: "央行定调下半年货币政策：保持流动性合理充裕", Source: "证券时报", Time: "2025-05-20 09:30"},
	{ID: "hot-news-2", Title: "证监会：进一步提高上市公司质量", Source: "上海证券报", Time: "2025-05-20 10:15"},
	{ID: "hot-news-3", Title: "两市成交额连续三日破万亿", Source: "中国证券报", Time: "2025-05-20 11:05"},
	{ID: "hot-news-4", Title: "创业板注册制改革满一周年", Source: "证券日报", Time: "2025-05-19 16:30"},
	{ID: "hot-news-5", Title: "银保监会：防范化解金融风险攻坚战取得重要阶段性成果", Source: "金融时报", Time: "2025-05-19 14:20"},
}

func lookup(code string) (model.Instrument, bool) {
	for _, in := range universe {
		if in.Code == code {
			return in, true
		}
	}
	return model.Instrument{}, false
}
