package market

import (
	"github.com/aristath/folio/internal/domain"
	"github.com/shopspring/decimal"
)

type catalogItem struct {
	symbol string
	name   string
}

func toEntries(items []catalogItem) []domain.CatalogEntry {
	entries := make([]domain.CatalogEntry, len(items))
	for i, it := range items {
		entries[i] = domain.CatalogEntry{Symbol: it.symbol, Name: it.name}
	}
	return entries
}

// Borsa Istanbul equities offered when adding a stock holding
var bistStocks = []catalogItem{
	{"THYAO", "Türk Hava Yolları"},
	{"GARAN", "Garanti BBVA"},
	{"AKBNK", "Akbank"},
	{"EREGL", "Ereğli Demir Çelik"},
	{"BIMAS", "BİM Mağazalar"},
	{"SISE", "Şişecam"},
	{"KCHOL", "Koç Holding"},
	{"SAHOL", "Sabancı Holding"},
	{"ASELS", "Aselsan"},
	{"TUPRS", "Tüpraş"},
	{"TCELL", "Turkcell"},
	{"YKBNK", "Yapı Kredi"},
	{"HALKB", "Halkbank"},
	{"ISCTR", "İş Bankası C"},
	{"VAKBN", "Vakıfbank"},
	{"PGSUS", "Pegasus"},
	{"KOZAL", "Koza Altın"},
	{"KOZAA", "Koza Anadolu Metal"},
	{"EKGYO", "Emlak Konut GYO"},
	{"TOASO", "Tofaş Oto"},
	{"FROTO", "Ford Otosan"},
	{"ARCLK", "Arçelik"},
	{"VESTL", "Vestel Elektronik"},
	{"ULKER", "Ülker Bisküvi"},
	{"TAVHL", "TAV Havalimanları"},
	{"PETKM", "Petkim"},
	{"SASA", "Sasa Polyester"},
	{"KRDMD", "Kardemir D"},
	{"DOHOL", "Doğan Holding"},
	{"TTKOM", "Türk Telekom"},
	{"ENKAI", "Enka İnşaat"},
	{"MGROS", "Migros"},
	{"SOKM", "Şok Marketler"},
	{"OYAKC", "Oyak Çimento"},
	{"TTRAK", "Türk Traktör"},
	{"AEFES", "Anadolu Efes"},
	{"AKSA", "Aksa Akrilik"},
	{"ALARK", "Alarko Holding"},
	{"ALGYO", "Alarko GYO"},
	{"ANHYT", "Anadolu Hayat"},
	{"AGHOL", "AG Anadolu Grubu"},
	{"AGESA", "Agesa Hayat"},
	{"AKSEN", "Aksa Enerji"},
	{"ALBRK", "Albaraka Türk"},
	{"ALFAS", "Alfa Solar"},
	{"ANSGR", "Anadolu Sigorta"},
	{"AYDEM", "Aydem Enerji"},
	{"BASGZ", "Başkent Doğalgaz"},
	{"BJKAS", "Beşiktaş"},
	{"BRSAN", "Borusan Mannesmann"},
	{"BRYAT", "Borusan Yatırım"},
	{"BUCIM", "Bursa Çimento"},
	{"CCOLA", "Coca Cola İçecek"},
	{"CIMSA", "Çimsa"},
	{"DOAS", "Doğuş Otomotiv"},
	{"EGEEN", "Ege Endüstri"},
	{"ENJSA", "Enerjisa Enerji"},
	{"FENER", "Fenerbahçe"},
	{"GESAN", "Giresun Fındık"},
	{"GLYHO", "Global Yatırım"},
	{"GOODY", "Goodyear"},
	{"GUBRF", "Gübre Fabrikaları"},
	{"HEKTS", "Hektaş"},
	{"IHLGM", "İhlas Gayrimenkul"},
	{"INDES", "İndeks Bilgisayar"},
	{"IPEKE", "İpek Doğal Enerji"},
	{"ISATR", "İş Fin. Kir."},
	{"ISMEN", "İş Yatırım"},
	{"KARSN", "Karsan"},
	{"KARTN", "Kartonsan"},
	{"KAYSE", "Kayseri Şeker"},
	{"KLNMA", "Türkiye Kalkınma"},
	{"KONTR", "Kontrolmatik"},
	{"KORDS", "Kordsa"},
	{"LOGO", "Logo Yazılım"},
	{"MAVI", "Mavi Giyim"},
	{"NETAS", "Netaş Telekom"},
	{"ODAS", "Odaş Elektrik"},
	{"OTKAR", "Otokar"},
	{"PARSN", "Parsan"},
	{"POLHO", "Polisan Holding"},
	{"QUAGR", "QUA Granite"},
	{"SAYAS", "Say Yenilenebilir"},
	{"SELEC", "Selçuk Ecza"},
	{"SKBNK", "Şekerbank"},
	{"SMRTG", "Smart Güneş"},
	{"SNGYO", "Sinpaş GYO"},
	{"SSEN", "Sambolic Enerji"},
	{"TATGD", "Tat Gıda"},
	{"TKFEN", "Tekfen Holding"},
	{"TKNSA", "Teknosa"},
	{"TMSN", "Tümosan"},
	{"TRGYO", "Torunlar GYO"},
	{"TRILC", "Turk İlaç"},
	{"TSKB", "TSKB"},
	{"TURSG", "Türkiye Sigorta"},
	{"ULUUN", "Ulusoy Un"},
	{"VAKKO", "Vakko"},
	{"VERUS", "Verusa Holding"},
	{"VESBE", "Vestel Beyaz"},
	{"YATAS", "Yataş"},
	{"ZOREN", "Zorlu Enerji"},
	{"GSRAY", "Galatasaray"},
}

var turkishFunds = []catalogItem{
	{"ZPX", "Ziraat Portföy Altın Fonu"},
	{"GAF", "Garanti Portföy Altın Fonu"},
	{"TAF", "İş Bankası Altın Fonu"},
	{"YAF", "Yapı Kredi Altın Fonu"},
	{"TI2", "İş Bankası Değişken Fon"},
	{"ZDJ", "Ziraat Portföy BIST30 Fonu"},
	{"AFT", "Ak Portföy Teknoloji Fonu"},
	{"ZPE", "Ziraat Portföy Eurobond Fonu"},
	{"GAE", "Garanti Portföy Eurobond Fonu"},
	{"YEF", "Yapı Kredi Eurobond Fonu"},
	{"HSY", "HSBC Portföy Yabancı Fon"},
	{"TCD", "TEB Portföy Değişken Fon"},
	{"AFA", "Ak Portföy Amerika Fonu"},
	{"ZPP", "Ziraat Para Piyasası Fonu"},
	{"GAP", "Garanti Para Piyasası Fonu"},
	{"TAP", "İş Bankası Para Piyasası"},
	{"AK1", "Ak Portföy BIST30 Fonu"},
	{"GHE", "Garanti Hisse Fonu"},
	{"ZHF", "Ziraat Hisse Fonu"},
	{"YHE", "Yapı Kredi Hisse Fonu"},
}

// Precious metals and foreign currencies
var commodities = []catalogItem{
	{"GAU", "Gram Altın"},
	{"GAUSP", "Gram Altın (Spot)"},
	{"HASALT", "Has Altın"},
	{"CEYREK", "Çeyrek Altın"},
	{"YARIM", "Yarım Altın"},
	{"TAM", "Tam Altın"},
	{"CUMALT", "Cumhuriyet Altını"},
	{"RESAT", "Reşat Altın"},
	{"ATA", "Ata Altın"},
	{"14AYAR", "Bilezik 14 Ayar"},
	{"18AYAR", "Bilezik 18 Ayar"},
	{"22AYAR", "Bilezik 22 Ayar"},
	{"GUMUS", "Gümüş (Gram)"},
	{"PLATIN", "Platin (Gram)"},
	{"USD", "Amerikan Doları"},
	{"EUR", "Euro"},
	{"GBP", "İngiliz Sterlini"},
	{"CHF", "İsviçre Frangı"},
	{"JPY", "Japon Yeni"},
	{"AUD", "Avustralya Doları"},
	{"CAD", "Kanada Doları"},
	{"SAR", "Suudi Arabistan Riyali"},
	{"DKK", "Danimarka Kronu"},
	{"SEK", "İsveç Kronu"},
	{"NOK", "Norveç Kronu"},
}

// Served when the crypto provider is down and nothing is cached
var fallbackCoins = []catalogItem{
	{"BTC", "Bitcoin"},
	{"ETH", "Ethereum"},
	{"BNB", "Binance Coin"},
	{"XRP", "Ripple"},
	{"ADA", "Cardano"},
	{"DOGE", "Dogecoin"},
	{"SOL", "Solana"},
	{"DOT", "Polkadot"},
	{"MATIC", "Polygon"},
	{"AVAX", "Avalanche"},
	{"LINK", "Chainlink"},
	{"UNI", "Uniswap"},
	{"ATOM", "Cosmos"},
	{"LTC", "Litecoin"},
	{"TRX", "Tron"},
	{"SHIB", "Shiba Inu"},
	{"XLM", "Stellar"},
	{"NEAR", "NEAR Protocol"},
	{"APT", "Aptos"},
	{"ARB", "Arbitrum"},
}

func ticker(symbol, name, price, change string) Ticker {
	return Ticker{
		Symbol: symbol,
		Name:   name,
		Price:  decimal.RequireFromString(price),
		Change: decimal.RequireFromString(change),
	}
}

// Indicative boards for markets without a live feed
var staticBoards = map[string][]Ticker{
	BoardBIST: {
		ticker("THYAO", "Türk Hava Yolları", "285.50", "1.2"),
		ticker("GARAN", "Garanti BBVA", "62.30", "-0.5"),
	},
	BoardABD: {
		ticker("AAPL", "Apple Inc.", "185.92", "0.8"),
		ticker("TSLA", "Tesla, Inc.", "193.57", "-2.1"),
	},
	BoardForex: {
		ticker("USDTRY", "Dolar/TL", "30.45", "0.1"),
		ticker("EURTRY", "Euro/TL", "32.90", "0.2"),
	},
	BoardCommodity: {
		ticker("XAU", "Altın (Ons)", "2035.40", "0.3"),
		ticker("XAG", "Gümüş (Ons)", "22.85", "-0.4"),
	},
}
