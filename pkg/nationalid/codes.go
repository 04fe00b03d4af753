package nationalid

// validMunicipalityCodes is the registry of department/municipality
// suffixes a DPI may carry, grouped by department.
var validMunicipalityCodes = map[string]bool{
	// Guatemala
	"0101": true, "0102": true, "0103": true, "0104": true, "0105": true, "0106": true,
	"0107": true, "0108": true, "0109": true, "0110": true, "0111": true, "0112": true,
	"0113": true, "0114": true, "0115": true, "0116": true, "0117": true,
	// El Progreso
	"0201": true, "0202": true, "0203": true, "0204": true, "0205": true, "0206": true,
	"0207": true, "0208": true,
	// Sacatepequez
	"0301": true, "0302": true, "0303": true, "0304": true, "0305": true, "0306": true,
	"0307": true, "0308": true, "0309": true, "0310": true, "0311": true, "0312": true,
	"0313": true, "0314": true, "0315": true, "0316": true,
	// Chimaltenango
	"0401": true, "0402": true, "0403": true, "0404": true, "0405": true, "0406": true,
	"0407": true, "0408": true, "0409": true, "0410": true, "0411": true, "0412": true,
	"0413": true, "0414": true, "0415": true, "0416": true,
	// Escuintla
	"0501": true, "0502": true, "0503": true, "0504": true, "0505": true, "0506": true,
	"0507": true, "0508": true, "0509": true, "0510": true, "0511": true, "0512": true,
	"0513": true,
	// Santa Rosa
	"0601": true, "0602": true, "0603": true, "0604": true, "0605": true, "0606": true,
	"0607": true, "0608": true, "0609": true, "0610": true, "0611": true, "0612": true,
	"0613": true, "0614": true,
	// Solola
	"0701": true, "0702": true, "0703": true, "0704": true, "0705": true, "0706": true,
	"0707": true, "0708": true, "0709": true, "0710": true, "0711": true, "0712": true,
	"0713": true, "0714": true, "0715": true, "0716": true, "0717": true, "0718": true,
	"0719": true,
	// Totonicapan
	"0801": true, "0802": true, "0803": true, "0804": true, "0805": true, "0806": true,
	"0807": true, "0808": true,
	// Quetzaltenango
	"0901": true, "0902": true, "0903": true, "0904": true, "0905": true, "0906": true,
	"0907": true, "0908": true, "0909": true, "0910": true, "0911": true, "0912": true,
	"0913": true, "0914": true, "0915": true, "0916": true, "0917": true, "0918": true,
	"0919": true, "0920": true, "0921": true, "0922": true, "0923": true, "0924": true,
	// Suchitepequez
	"1001": true, "1002": true, "1003": true, "1004": true, "1005": true, "1006": true,
	"1007": true, "1008": true, "1009": true, "1010": true, "1011": true, "1012": true,
	"1013": true, "1014": true, "1015": true, "1016": true, "1017": true, "1018": true,
	"1019": true, "1020": true,
	// Retalhuleu
	"1101": true, "1102": true, "1103": true, "1104": true, "1105": true, "1106": true,
	"1107": true, "1108": true, "1109": true,
	// San Marcos
	"1201": true, "1202": true, "1203": true, "1204": true, "1205": true, "1206": true,
	"1207": true, "1208": true, "1209": true, "1210": true, "1211": true, "1212": true,
	"1213": true, "1214": true, "1215": true, "1216": true, "1217": true, "1218": true,
	"1219": true, "1220": true, "1221": true, "1222": true, "1223": true, "1224": true,
	"1225": true, "1226": true, "1227": true, "1228": true, "1229": true,
	// Huehuetenango
	"1301": true, "1302": true, "1303": true, "1304": true, "1305": true, "1306": true,
	"1307": true, "1308": true, "1309": true, "1310": true, "1311": true, "1312": true,
	"1313": true, "1314": true, "1315": true, "1316": true, "1317": true, "1318": true,
	"1319": true, "1320": true, "1321": true, "1322": true, "1323": true, "1324": true,
	"1325": true, "1326": true, "1327": true, "1328": true, "1329": true, "1330": true,
	"1331": true, "1332": true, "1333": true, "1334": true, "1335": true, "1336": true,
	// Quiche
	"1401": true, "1402": true, "1403": true, "1404": true, "1405": true, "1406": true,
	"1407": true, "1408": true, "1409": true, "1410": true, "1411": true, "1412": true,
	"1413": true, "1414": true, "1415": true, "1416": true, "1417": true, "1418": true,
	"1419": true, "1420": true,
	// Baja Verapaz
	"1501": true, "1502": true, "1503": true, "1504": true, "1505": true, "1506": true,
	"1507": true, "1508": true,
	// Alta Verapaz
	"1601": true, "1602": true, "1603": true, "1604": true, "1605": true, "1606": true,
	"1607": true, "1608": true, "1609": true, "1610": true, "1611": true, "1612": true,
	"1613": true, "1614": true, "1615": true, "1616": true, "1617": true,
	// Peten
	"1701": true, "1702": true, "1703": true, "1704": true, "1705": true, "1706": true,
	"1707": true, "1708": true, "1709": true, "1710": true, "1711": true, "1712": true,
	"1713": true, "1714": true, "1715": true,
	// Izabal
	"1801": true, "1802": true, "1803": true, "1804": true, "1805": true,
	// Zacapa
	"1901": true, "1902": true, "1903": true, "1904": true, "1905": true, "1906": true,
	"1907": true, "1908": true, "1909": true, "1910": true,
	// Chiquimula
	"2001": true, "2002": true, "2003": true, "2004": true, "2005": true, "2006": true,
	"2007": true, "2008": true, "2009": true,
	// Jalapa
	"2101": true, "2102": true, "2103": true, "2104": true, "2105": true, "2106": true,
	"2107": true,
	// Jutiapa
	"2201": true, "2202": true, "2203": true, "2204": true, "2205": true, "2206": true,
	"2207": true, "2208": true, "2209": true, "2210": true, "2211": true, "2212": true,
	"2213": true, "2214": true, "2215": true, "2216": true, "2217": true,
}
